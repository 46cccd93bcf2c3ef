// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/import.go
// Summary: Memory import pipeline: packed client buffers to canonical textures.

package render

import (
	"encoding/binary"

	"github.com/framegrace/texelwl/fourcc"
	"github.com/framegrace/texelwl/geom"
)

// ImportMemory decodes a tightly packed client buffer into a new Texture.
// The buffer must hold at least size.W*size.H*4 bytes of 32-bit pixels in the
// given format. With flipped set, buffer rows are read bottom-up.
func (r *Renderer) ImportMemory(data []byte, format fourcc.Code, size geom.Size, flipped bool) (*Texture, error) {
	if !fourcc.Supported(format) {
		return nil, &UnsupportedFormatError{Code: format}
	}
	if !validTextureSize(size.W, size.H) {
		return nil, ErrTextureTooBig
	}
	tex := newTexture(size.W, size.H, format)
	if err := decodeInto(tex, data, 0, size.W*4, geom.FromSize(size), flipped); err != nil {
		return nil, err
	}
	return tex, nil
}

// UpdateMemory re-decodes a sub-rectangle of the client buffer into an
// existing Texture, the one mutation allowed after creation. The buffer is
// addressed with the texture's own geometry (tight stride); the region must
// lie inside the texture.
func (r *Renderer) UpdateMemory(tex *Texture, data []byte, region geom.Rect) error {
	region = region.Intersect(geom.Rect{W: tex.width, H: tex.height})
	if region.Empty() {
		return nil
	}
	return decodeInto(tex, data, 0, tex.width*4, region, false)
}

// MemFormats advertises the pixel formats the import pipeline accepts. The
// external compositor uses the list to negotiate buffer formats with clients.
func (r *Renderer) MemFormats() []fourcc.Code {
	return fourcc.All()
}

// decodeInto is the hot loop: it walks the packed words of one buffer region
// in row-major order and writes canonical pixels. Words are assembled
// little-endian, matching the DRM definition of the packed layouts.
func decodeInto(t *Texture, data []byte, offset, stride int, region geom.Rect, flipped bool) error {
	if offset < 0 || stride < 0 {
		return ErrShortBuffer
	}
	for y := region.Y; y < region.MaxY(); y++ {
		srcY := y
		if flipped {
			srcY = t.height - 1 - y
		}
		rowOff := offset + srcY*stride
		end := rowOff + region.MaxX()*4
		if end > len(data) || rowOff < 0 {
			return ErrShortBuffer
		}
		for x := region.X; x < region.MaxX(); x++ {
			word := binary.LittleEndian.Uint32(data[rowOff+x*4:])
			t.set(x, y, decodePixel(t.format, word))
		}
	}
	return nil
}
