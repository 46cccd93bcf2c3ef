// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/pixel.go
// Summary: Canonical RGBA8 pixel representation and the per-channel blend.

package render

import (
	"math"

	"github.com/framegrace/texelwl/fourcc"
)

// Pixel is the engine's canonical pixel: one 32-bit word with R in the high
// byte and A in the low byte, independent of whatever packed layout the
// source buffer used. Pixels are produced only by format-aware decoding (or
// the explicit constructors); raw client words never become Pixels directly.
type Pixel uint32

// NewPixel packs the four channels into canonical order.
func NewPixel(r, g, b, a uint8) Pixel {
	return Pixel(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGB returns a fully opaque pixel.
func RGB(r, g, b uint8) Pixel {
	return NewPixel(r, g, b, 0xFF)
}

func (p Pixel) R() uint8 { return uint8(p >> 24) }
func (p Pixel) G() uint8 { return uint8(p >> 16) }
func (p Pixel) B() uint8 { return uint8(p >> 8) }
func (p Pixel) A() uint8 { return uint8(p) }

// decodePixel converts one packed source word into canonical form. Alpha is
// always defined afterwards: either decoded or forced opaque by the table.
func decodePixel(c fourcc.Code, word uint32) Pixel {
	r, g, b, a := fourcc.Decode(c, word)
	return NewPixel(r, g, b, a)
}

// blend mixes src over dst with the given coverage: dst*(1-a) + src*a per
// channel, computed in floating point, rounded to nearest, clamped to the
// byte range. Alpha is treated as a fourth channel so a full-coverage blend
// collapses to src exactly.
func blend(dst, src Pixel, a float64) Pixel {
	if a <= 0 {
		return dst
	}
	if a >= 1 {
		return src
	}
	return NewPixel(
		blendChannel(dst.R(), src.R(), a),
		blendChannel(dst.G(), src.G(), a),
		blendChannel(dst.B(), src.B(), a),
		blendChannel(dst.A(), src.A(), a),
	)
}

func blendChannel(dst, src uint8, a float64) uint8 {
	v := math.Round(float64(dst)*(1-a) + float64(src)*a)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
