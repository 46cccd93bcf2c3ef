// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/errors.go
// Summary: Error set for the import pipeline and the frame draw protocol.

package render

import (
	"errors"
	"fmt"

	"github.com/framegrace/texelwl/fourcc"
)

var (
	// ErrTextureTooBig means the requested texture dimensions exceed the
	// 16-bit terminal coordinate space. Callers typically skip the surface
	// for the current frame.
	ErrTextureTooBig = errors.New("render: texture dimensions exceed 16-bit coordinate space")

	// ErrDmaBufImportNotSupported means the external buffer's memory
	// layout cannot be walked by the software decode path. Callers should
	// fall back to the shared-memory path.
	ErrDmaBufImportNotSupported = errors.New("render: external buffer layout not supported")

	// ErrShortBuffer means the client buffer is smaller than its declared
	// geometry requires.
	ErrShortBuffer = errors.New("render: buffer shorter than declared size")

	// ErrFrameFinished is returned by draw calls issued after Finish.
	ErrFrameFinished = errors.New("render: draw call on finished frame")

	// ErrFrameOpen is returned by Render while another Frame still holds
	// the framebuffer. One frame at a time per framebuffer.
	ErrFrameOpen = errors.New("render: framebuffer already has an open frame")
)

// UnsupportedFormatError reports a FourCC code outside the advertised
// capability list. The caller must not have offered the format to clients;
// the affected surface is skipped.
type UnsupportedFormatError struct {
	Code fourcc.Code
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("render: unsupported pixel format %s", e.Code)
}

// UnsupportedShmFormatError reports a wl_shm format value with no FourCC
// equivalent in the capability list.
type UnsupportedShmFormatError struct {
	Value uint32
}

func (e *UnsupportedShmFormatError) Error() string {
	return fmt.Sprintf("render: unsupported shm pixel format %#x", e.Value)
}

// BufferAccessError wraps a failure to reach the underlying client memory
// (a failed mmap, a vanished region). The single import fails; the renderer
// continues.
type BufferAccessError struct {
	Err error
}

func (e *BufferAccessError) Error() string {
	return fmt.Sprintf("render: buffer access: %v", e.Err)
}

func (e *BufferAccessError) Unwrap() error {
	return e.Err
}
