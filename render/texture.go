// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/texture.go
// Summary: Canonical RGBA8 texture storage produced by the import pipeline.

package render

import (
	"github.com/framegrace/texelwl/fourcc"
)

// maxTextureDim bounds texture geometry to the 16-bit terminal coordinate
// space.
const maxTextureDim = 0xFFFF

// Texture is a dense row-major grid of canonical pixels. Textures are
// created by the import pipeline and are immutable afterwards, with one
// exception: the shared-memory update-in-place path rewrites damaged regions
// through the surface cache, which serialises writers against readers.
// Textures are shared by reference between surface caches and in-flight draw
// calls.
type Texture struct {
	width  int
	height int
	format fourcc.Code // source format tag, 0 when unknown
	pix    []Pixel
}

func newTexture(w, h int, format fourcc.Code) *Texture {
	return &Texture{
		width:  w,
		height: h,
		format: format,
		pix:    make([]Pixel, w*h),
	}
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the source format tag the texture was imported from.
// ok is false when the source format is unknown.
func (t *Texture) Format() (fourcc.Code, bool) {
	return t.format, t.format != 0
}

// At returns the pixel at (x, y), or a zero pixel outside the bounds.
func (t *Texture) At(x, y int) Pixel {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return 0
	}
	return t.pix[y*t.width+x]
}

// sample fetches a texel with coordinates clamped to the edge, the behaviour
// nearest-neighbour blits rely on at destination borders.
func (t *Texture) sample(x, y int) Pixel {
	if t.width == 0 || t.height == 0 {
		return 0
	}
	if x < 0 {
		x = 0
	} else if x >= t.width {
		x = t.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.height {
		y = t.height - 1
	}
	return t.pix[y*t.width+x]
}

func (t *Texture) set(x, y int, p Pixel) {
	t.pix[y*t.width+x] = p
}

// validTextureSize reports whether the geometry fits the coordinate space.
func validTextureSize(w, h int) bool {
	return w >= 0 && h >= 0 && w <= maxTextureDim && h <= maxTextureDim
}
