// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: encoder/ansi.go
// Summary: Encodes cell grids as ANSI truecolor escape streams.

package encoder

import (
	"bytes"
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelwl/render"
)

// ANSI encodes committed cell grids into a raw ANSI escape stream for
// terminals the process does not own, such as a pty or a network socket.
// It keeps the previously encoded grid as a baseline and emits only the
// cells that changed; Reset drops the baseline so the next frame repaints
// everything.
//
// Not safe for concurrent use; the pipeline serialises access.
type ANSI struct {
	prev *render.CellGrid
}

// NewANSI returns an encoder with no baseline.
func NewANSI() *ANSI {
	return &ANSI{}
}

// Reset drops the diff baseline.
func (e *ANSI) Reset() {
	e.prev = nil
}

// Encode returns the escape stream that brings the terminal from the
// previous encoded grid to this one. The grid is retained as the next
// baseline, so the caller must not mutate it afterwards.
func (e *ANSI) Encode(grid *render.CellGrid) []byte {
	var buf bytes.Buffer

	full := e.prev == nil || e.prev.Cols != grid.Cols || e.prev.Rows != grid.Rows
	if full {
		buf.WriteString("\x1b[2J")
	}

	// Cursor and SGR state across the walk; -1 means unknown.
	curRow, curCol := -1, -1
	var lastFg, lastBg render.Pixel
	haveSGR := false
	advance := runewidth.RuneWidth(render.HalfBlock)

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			cell := grid.At(col, row)
			if !full && *e.prev.At(col, row) == *cell {
				continue
			}
			if row != curRow || col != curCol {
				fmt.Fprintf(&buf, "\x1b[%d;%dH", row+1, col+1)
			}
			if !haveSGR || cell.Fg != lastFg {
				fmt.Fprintf(&buf, "\x1b[38;2;%d;%d;%dm", cell.Fg.R(), cell.Fg.G(), cell.Fg.B())
			}
			if !haveSGR || cell.Bg != lastBg {
				fmt.Fprintf(&buf, "\x1b[48;2;%d;%d;%dm", cell.Bg.R(), cell.Bg.G(), cell.Bg.B())
			}
			lastFg, lastBg = cell.Fg, cell.Bg
			haveSGR = true
			buf.WriteRune(render.HalfBlock)
			curRow, curCol = row, col+advance
		}
	}

	if buf.Len() > 0 {
		buf.WriteString("\x1b[0m")
	}
	e.prev = grid
	return buf.Bytes()
}
