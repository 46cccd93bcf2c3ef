// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/geom.go
// Summary: Integer geometry primitives shared by the damage/draw protocol.

package geom

// Point is a position in framebuffer pixel coordinates.
type Point struct {
	X, Y int
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H int
}

// Empty reports whether the size spans no pixels.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned, integer-aligned rectangle in framebuffer pixel
// space. Min is inclusive, the far edge (X+W, Y+H) is exclusive.
type Rect struct {
	X, Y, W, H int
}

// FromSize returns a rectangle anchored at the origin.
func FromSize(s Size) Rect {
	return Rect{W: s.W, H: s.H}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Size returns the rectangle's extent.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.X + r.W }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Y + r.H }

// Intersect returns the overlap of two rectangles. The result is empty when
// they do not overlap; callers must treat empty intersections as no-ops.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}
