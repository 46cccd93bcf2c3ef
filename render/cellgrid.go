// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/cellgrid.go
// Summary: Terminal-shaped framebuffer: a cell grid doubling pixel rows.

package render

import (
	"github.com/framegrace/texelwl/geom"
)

// HalfBlock is the fixed glyph every composited cell carries. With the lower
// half block, the cell background paints the top logical pixel row and the
// foreground paints the bottom one.
const HalfBlock = '▄'

// Cell is one terminal character cell. Together with the fixed half-block
// glyph it fully determines two vertically stacked logical pixels in its
// column: top → Bg, bottom → Fg.
type Cell struct {
	Fg Pixel
	Bg Pixel
}

// CellGrid is a cols×rows grid of cells representing cols×(rows*2) logical
// pixels.
type CellGrid struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellGrid allocates an empty grid. All cells are zero-valued.
func NewCellGrid(cols, rows int) *CellGrid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &CellGrid{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
}

// At returns a pointer to the cell at (col, row), or nil outside the grid.
func (g *CellGrid) At(col, row int) *Cell {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return nil
	}
	return &g.Cells[row*g.Cols+col]
}

// PixelSize returns the logical pixel extent the grid represents.
func (g *CellGrid) PixelSize() geom.Size {
	return geom.Size{W: g.Cols, H: g.Rows * 2}
}

// Bounds returns the grid's pixel-space rectangle.
func (g *CellGrid) Bounds() geom.Rect {
	return geom.FromSize(g.PixelSize())
}

// Clone returns a deep copy of the grid.
func (g *CellGrid) Clone() *CellGrid {
	out := &CellGrid{Cols: g.Cols, Rows: g.Rows, Cells: make([]Cell, len(g.Cells))}
	copy(out.Cells, g.Cells)
	return out
}

// Equal reports whether two grids have identical geometry and content.
func (g *CellGrid) Equal(o *CellGrid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.Cols != o.Cols || g.Rows != o.Rows {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != o.Cells[i] {
			return false
		}
	}
	return true
}

// Output is the live terminal buffer a finished frame commits into. Commit
// swaps the grid in as the new front buffer and flushes it to the device; it
// returns a grid the caller may recycle: the previous front grid, the
// committed grid itself when the output keeps no reference to it, or nil
// when there is nothing to hand back. Commit errors are terminal I/O
// failures and are fatal to the render loop.
type Output interface {
	Commit(grid *CellGrid) (*CellGrid, error)
}

// Framebuffer owns the working cell grid a Frame draws into. It is mutated
// only through a Frame; its size is reconciled with the declared output size
// at Render entry, never mid-frame.
type Framebuffer struct {
	out       Output
	grid      *CellGrid
	frameOpen bool
}

// NewFramebuffer binds a framebuffer to its output. The grid is allocated
// lazily by the first Render.
func NewFramebuffer(out Output) *Framebuffer {
	return &Framebuffer{out: out}
}

// Grid exposes the working grid. It is nil before the first Render and must
// not be written around an open Frame.
func (fb *Framebuffer) Grid() *CellGrid {
	return fb.grid
}

// Size returns the grid's cell dimensions (0×0 before the first Render).
func (fb *Framebuffer) Size() (cols, rows int) {
	if fb.grid == nil {
		return 0, 0
	}
	return fb.grid.Cols, fb.grid.Rows
}

// resizeIfNeeded reconciles the grid with the declared output size, given in
// logical pixels. On mismatch the old content is discarded and a fresh empty
// grid is allocated: no scaling, no partial copy. Called at Render entry so a
// Frame never observes a stale size.
func (fb *Framebuffer) resizeIfNeeded(outputSize geom.Size) {
	cols := outputSize.W
	rows := (outputSize.H + 1) / 2
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if fb.grid != nil && fb.grid.Cols == cols && fb.grid.Rows == rows {
		return
	}
	fb.grid = NewCellGrid(cols, rows)
}
