// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/frame.go
// Summary: The render pass: clear/fill/blit draw protocol and the commit swap.

package render

import (
	"time"

	"github.com/framegrace/texelwl/geom"
)

// Frame is a bounded-lifetime render pass over one Renderer and one
// Framebuffer. It is created by Renderer.Render, accepts draw calls, and is
// consumed by Finish, which swaps the working grid into the live terminal
// buffer exactly once. Frames are not shareable; no second Frame can be
// opened against the same Framebuffer until this one finishes.
//
// Every draw call clips to destination ∩ damage ∩ framebuffer bounds; empty
// intersections are no-ops.
type Frame struct {
	renderer   *Renderer
	fb         *Framebuffer
	outputSize geom.Size
	transform  Transform
	started    time.Time

	finished     bool
	drawCalls    int
	cellsTouched int
}

// Transformation returns the output transform the frame was opened with.
func (f *Frame) Transformation() Transform {
	return f.transform
}

// Clear paints the cells intersecting each damage rectangle with a uniform
// color: foreground and background identical, so both logical pixel rows of
// every touched cell read as the clear color.
func (f *Frame) Clear(color Pixel, damage []geom.Rect) error {
	if f.finished {
		return ErrFrameFinished
	}
	f.drawCalls++
	bounds := f.fb.grid.Bounds()
	for _, d := range damage {
		f.paintCells(d.Intersect(bounds), color)
	}
	return nil
}

// FillRect paints dst ∩ damage ∩ bounds with a uniform color.
func (f *Frame) FillRect(dst geom.Rect, damage []geom.Rect, color Pixel) error {
	if f.finished {
		return ErrFrameFinished
	}
	f.drawCalls++
	bounds := f.fb.grid.Bounds()
	for _, d := range damage {
		f.paintCells(dst.Intersect(d).Intersect(bounds), color)
	}
	return nil
}

// paintCells sets fg=bg=color for every cell overlapping the pixel rect.
func (f *Frame) paintCells(r geom.Rect, color Pixel) {
	if r.Empty() {
		return
	}
	grid := f.fb.grid
	rowStart := r.Y / 2
	rowEnd := (r.MaxY() + 1) / 2
	for row := rowStart; row < rowEnd; row++ {
		for col := r.X; col < r.MaxX(); col++ {
			cell := grid.At(col, row)
			cell.Fg = color
			cell.Bg = color
			f.cellsTouched++
		}
	}
}

// Blit samples the texture over dst and blends it into the cell grid with
// vertical half-block doubling. Within each damaged span the rows partition
// into an optional leading odd half-row, whole row pairs, and an optional
// trailing half-row. Even pixel rows land in the cell background (top half),
// odd rows in the foreground (bottom half); a span covering only one of a
// cell's rows leaves the other half untouched. Sampling is nearest-neighbour
// over the (possibly scaled) source rectangle, through the frame transform.
func (f *Frame) Blit(tex *Texture, src, dst geom.Rect, damage []geom.Rect, alpha float64) error {
	if f.finished {
		return ErrFrameFinished
	}
	f.drawCalls++
	if tex == nil || dst.Empty() || src.Empty() {
		return nil
	}
	bounds := f.fb.grid.Bounds()
	for _, d := range damage {
		ir := dst.Intersect(d).Intersect(bounds)
		if ir.Empty() {
			continue
		}
		y := ir.Y
		yEnd := ir.MaxY()
		if y%2 == 1 {
			f.blitRow(tex, src, dst, ir.X, ir.MaxX(), y, alpha)
			y++
		}
		for ; y+1 < yEnd; y += 2 {
			f.blitRow(tex, src, dst, ir.X, ir.MaxX(), y, alpha)
			f.blitRow(tex, src, dst, ir.X, ir.MaxX(), y+1, alpha)
		}
		if y < yEnd {
			f.blitRow(tex, src, dst, ir.X, ir.MaxX(), y, alpha)
		}
	}
	return nil
}

// blitRow blends one logical pixel row into its half of the cell row.
func (f *Frame) blitRow(tex *Texture, src, dst geom.Rect, x0, x1, y int, alpha float64) {
	grid := f.fb.grid
	row := y / 2
	bottom := y%2 == 1
	for x := x0; x < x1; x++ {
		s := f.sampleSource(tex, src, dst, x, y)
		a := alpha * float64(s.A()) / 255
		cell := grid.At(x, row)
		if bottom {
			cell.Fg = blend(cell.Fg, s, a)
		} else {
			cell.Bg = blend(cell.Bg, s, a)
		}
		f.cellsTouched++
	}
}

// sampleSource maps a destination pixel through the frame transform onto the
// source rectangle and fetches the nearest texel.
func (f *Frame) sampleSource(tex *Texture, src, dst geom.Rect, x, y int) Pixel {
	u, v := f.transform.apply(x-dst.X, y-dst.Y, dst.W, dst.H)
	effW, effH := dst.W, dst.H
	if f.transform.swapsDimensions() {
		effW, effH = dst.H, dst.W
	}
	sx := src.X + u*src.W/effW
	sy := src.Y + v*src.H/effH
	return tex.sample(sx, sy)
}

// Finish consumes the frame: it swaps the working grid into the output's
// live buffer and flushes. The swap happens exactly once; repeated calls are
// no-ops, which lets a scoped deferred Finish coexist with an explicit one on
// the happy path. I/O failures from the commit are fatal to the render loop
// and propagate to the caller.
func (f *Frame) Finish() error {
	if f.finished {
		return nil
	}
	f.finished = true
	f.fb.frameOpen = false

	var err error
	if f.fb.out != nil {
		committed := f.fb.grid
		var prev *CellGrid
		prev, err = f.fb.out.Commit(committed)
		// Recycle whatever grid the output handed back as the next
		// working grid, seeded with the frame just committed so
		// damage-limited redraws stay valid. An output that retains
		// the committed grid returns its previous front grid instead,
		// and then the copy re-seeds it.
		if prev != nil && prev.Cols == committed.Cols && prev.Rows == committed.Rows {
			if prev != committed {
				copy(prev.Cells, committed.Cells)
			}
			f.fb.grid = prev
		} else {
			f.fb.grid = committed.Clone()
		}
	}

	if obs := f.renderer.observer; obs != nil {
		obs.ObserveFrame(FrameStats{
			OutputSize:   f.outputSize,
			Transform:    f.transform,
			DrawCalls:    f.drawCalls,
			CellsTouched: f.cellsTouched,
			Duration:     time.Since(f.started),
		})
	}
	return err
}
