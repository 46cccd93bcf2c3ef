// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fourcc/fourcc.go
// Summary: DRM FourCC pixel format codes and the packed-word channel table.

// Package fourcc describes the packed 32-bit pixel layouts the renderer can
// import. Codes follow the DRM FourCC numeric space and are stable integers;
// they must never be reordered or renumbered.
package fourcc

import "fmt"

// Code identifies a packed 32-bit pixel layout.
type Code uint32

func code(a, b, c, d byte) Code {
	return Code(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// The eight supported layouts. The format name reads the packed word from the
// most significant byte down: Argb8888 stores A in bits 31:24 and B in 7:0.
// X-variants carry undefined bits where the alpha channel would be; decoding
// treats them as fully opaque.
var (
	Argb8888 = code('A', 'R', '2', '4')
	Xrgb8888 = code('X', 'R', '2', '4')
	Abgr8888 = code('A', 'B', '2', '4')
	Xbgr8888 = code('X', 'B', '2', '4')
	Rgba8888 = code('R', 'A', '2', '4')
	Rgbx8888 = code('R', 'X', '2', '4')
	Bgra8888 = code('B', 'A', '2', '4')
	Bgrx8888 = code('B', 'X', '2', '4')
)

// layout records where each channel sits inside the packed word. An opaque
// layout has no meaningful alpha bits; its decoded alpha is always 255.
type layout struct {
	name                           string
	rShift, gShift, bShift, aShift uint
	opaque                         bool
}

// The table is the single source of truth for channel extraction. Every
// supported code has exactly one entry; a lookup miss is a programming error
// because the capability list is advertised statically from this table.
var layouts = map[Code]layout{
	Argb8888: {name: "ARGB8888", aShift: 24, rShift: 16, gShift: 8, bShift: 0},
	Xrgb8888: {name: "XRGB8888", aShift: 24, rShift: 16, gShift: 8, bShift: 0, opaque: true},
	Abgr8888: {name: "ABGR8888", aShift: 24, bShift: 16, gShift: 8, rShift: 0},
	Xbgr8888: {name: "XBGR8888", aShift: 24, bShift: 16, gShift: 8, rShift: 0, opaque: true},
	Rgba8888: {name: "RGBA8888", rShift: 24, gShift: 16, bShift: 8, aShift: 0},
	Rgbx8888: {name: "RGBX8888", rShift: 24, gShift: 16, bShift: 8, aShift: 0, opaque: true},
	Bgra8888: {name: "BGRA8888", bShift: 24, gShift: 16, rShift: 8, aShift: 0},
	Bgrx8888: {name: "BGRX8888", bShift: 24, gShift: 16, rShift: 8, aShift: 0, opaque: true},
}

// all lists the supported codes in a stable advertisement order: the four
// formats Wayland clients are guaranteed to offer first, then the rest.
var all = []Code{
	Argb8888, Xrgb8888, Abgr8888, Xbgr8888,
	Rgba8888, Rgbx8888, Bgra8888, Bgrx8888,
}

// All returns the supported codes in advertisement order. The returned slice
// is a copy; callers may reorder it freely.
func All() []Code {
	out := make([]Code, len(all))
	copy(out, all)
	return out
}

// Supported reports whether the code is in the decode table.
func Supported(c Code) bool {
	_, ok := layouts[c]
	return ok
}

// HasAlpha reports whether the layout carries a meaningful alpha channel.
// It panics on an unsupported code, like Decode.
func HasAlpha(c Code) bool {
	return !mustLayout(c).opaque
}

// Decode extracts the channels of one packed word. Alpha is 255 for the four
// opaque layouts regardless of the stored bits. Decode panics on a code
// outside the table: unsupported codes are rejected at the import boundary,
// so reaching the table with one is a bug, not a runtime condition.
func Decode(c Code, word uint32) (r, g, b, a uint8) {
	l := mustLayout(c)
	r = uint8(word >> l.rShift)
	g = uint8(word >> l.gShift)
	b = uint8(word >> l.bShift)
	if l.opaque {
		a = 0xFF
	} else {
		a = uint8(word >> l.aShift)
	}
	return r, g, b, a
}

// Encode packs channels into a word in the given layout. For opaque layouts
// the alpha argument still lands in the X bits; Decode will ignore it.
func Encode(c Code, r, g, b, a uint8) uint32 {
	l := mustLayout(c)
	return uint32(r)<<l.rShift | uint32(g)<<l.gShift | uint32(b)<<l.bShift | uint32(a)<<l.aShift
}

func mustLayout(c Code) layout {
	l, ok := layouts[c]
	if !ok {
		panic(fmt.Sprintf("fourcc: unsupported format code 0x%08x", uint32(c)))
	}
	return l
}

// String returns the DRM format name, or the hex code when unknown.
func (c Code) String() string {
	if l, ok := layouts[c]; ok {
		return l.name
	}
	return fmt.Sprintf("Code(0x%08x)", uint32(c))
}

// FromShmCode maps a wl_shm format value onto the FourCC space. wl_shm
// special-cases the two mandatory formats as 0 and 1; every other wl_shm
// value is already the FourCC code.
func FromShmCode(v uint32) (Code, bool) {
	switch v {
	case 0:
		return Argb8888, true
	case 1:
		return Xrgb8888, true
	}
	c := Code(v)
	return c, Supported(c)
}

// Modifier describes the memory tiling layout of an externally allocated
// buffer, in the DRM format-modifier numeric space.
type Modifier uint64

const (
	// ModifierLinear is plain row-major memory, the only layout the
	// software import path can walk.
	ModifierLinear Modifier = 0

	// ModifierInvalid means the allocator did not communicate a layout.
	ModifierInvalid Modifier = 0x00ffffffffffffff
)
