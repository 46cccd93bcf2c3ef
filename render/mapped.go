// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/mapped.go
// Summary: Import path for externally mapped buffers (dmabuf equivalent).

package render

import (
	"golang.org/x/sys/unix"

	"github.com/framegrace/texelwl/fourcc"
	"github.com/framegrace/texelwl/geom"
)

// ExternalBuffer describes a pixel buffer that lives in memory the renderer
// does not own: a file descriptor to map plus the allocator's declared
// tiling modifier. Offset and stride address a sub-region of the mapping, so
// one mapping can describe several buffers.
type ExternalBuffer struct {
	FD       int
	Length   int
	Modifier fourcc.Modifier
}

// ImportExternal maps the buffer read-only, decodes the described region
// into a new Texture, and releases the mapping before returning; the mapping
// is never retained past the call. Only linear layouts can be walked by the
// software decode loop; any other modifier fails with
// ErrDmaBufImportNotSupported so the caller can fall back to the
// shared-memory path.
func (r *Renderer) ImportExternal(buf ExternalBuffer, format fourcc.Code, size geom.Size, offset, stride int) (*Texture, error) {
	if !fourcc.Supported(format) {
		return nil, &UnsupportedFormatError{Code: format}
	}
	if buf.Modifier != fourcc.ModifierLinear {
		return nil, ErrDmaBufImportNotSupported
	}
	if !validTextureSize(size.W, size.H) {
		return nil, ErrTextureTooBig
	}

	data, err := unix.Mmap(buf.FD, 0, buf.Length, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &BufferAccessError{Err: err}
	}
	defer func() {
		_ = unix.Munmap(data)
	}()

	tex := newTexture(size.W, size.H, format)
	if err := decodeInto(tex, data, offset, stride, geom.FromSize(size), false); err != nil {
		return nil, err
	}
	return tex, nil
}
