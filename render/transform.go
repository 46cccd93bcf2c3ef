// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/transform.go
// Summary: Output orientation transforms applied to blit source sampling.

package render

// Transform names the eight output orientations: four rotations, each with an
// optional horizontal flip applied before the rotation.
type Transform uint8

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

func (t Transform) String() string {
	switch t {
	case TransformNormal:
		return "normal"
	case Transform90:
		return "90"
	case Transform180:
		return "180"
	case Transform270:
		return "270"
	case TransformFlipped:
		return "flipped"
	case TransformFlipped90:
		return "flipped-90"
	case TransformFlipped180:
		return "flipped-180"
	case TransformFlipped270:
		return "flipped-270"
	}
	return "unknown"
}

// swapsDimensions reports whether the transform exchanges width and height.
func (t Transform) swapsDimensions() bool {
	switch t {
	case Transform90, Transform270, TransformFlipped90, TransformFlipped270:
		return true
	}
	return false
}

// apply maps a destination-relative coordinate (u, v) inside a w×h region
// onto the untransformed region. The result addresses a region of the same
// dimensions, swapped for the 90/270 cases.
func (t Transform) apply(u, v, w, h int) (int, int) {
	switch t {
	case TransformNormal:
		return u, v
	case Transform90:
		return v, w - 1 - u
	case Transform180:
		return w - 1 - u, h - 1 - v
	case Transform270:
		return h - 1 - v, u
	case TransformFlipped:
		return w - 1 - u, v
	case TransformFlipped90:
		return v, u
	case TransformFlipped180:
		return u, h - 1 - v
	case TransformFlipped270:
		return h - 1 - v, w - 1 - u
	}
	return u, v
}
