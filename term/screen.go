// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: term/screen.go
// Summary: The terminal output: commits cell grids as half-block glyphs.

package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelwl/geom"
	"github.com/framegrace/texelwl/render"
)

type styleKey struct {
	fg, bg render.Pixel
}

// Screen drives a terminal through a ScreenDriver and implements
// render.Output. Every committed cell is drawn as the lower half block, so
// the cell's background and foreground colors carry the two logical pixel
// rows. Commits diff against the previous front grid and only redraw changed
// cells.
type Screen struct {
	driver     ScreenDriver
	mu         sync.Mutex
	front      *render.CellGrid
	styleCache map[styleKey]tcell.Style
	events     chan tcell.Event
	quit       chan struct{}
	closeOnce  sync.Once
}

// NewScreen initializes the terminal through the driver: raw mode, default
// style, hidden cursor.
func NewScreen(driver ScreenDriver) (*Screen, error) {
	if err := driver.Init(); err != nil {
		return nil, err
	}
	defStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	driver.SetStyle(defStyle)
	driver.HideCursor()

	return &Screen{
		driver:     driver,
		styleCache: make(map[styleKey]tcell.Style),
		events:     make(chan tcell.Event, 10),
		quit:       make(chan struct{}),
	}, nil
}

// PixelSize returns the screen extent in logical pixels: one column per
// pixel, two pixel rows per cell row.
func (s *Screen) PixelSize() geom.Size {
	w, h := s.driver.Size()
	return geom.Size{W: w, H: h * 2}
}

// Commit swaps grid in as the front buffer and flushes it to the terminal,
// redrawing only cells that differ from the previous front grid. It returns
// the previous front grid for reuse.
func (s *Screen) Commit(grid *render.CellGrid) (*render.CellGrid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.front
	diff := prev != nil && prev.Cols == grid.Cols && prev.Rows == grid.Rows
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			cell := grid.At(col, row)
			if diff && *prev.At(col, row) == *cell {
				continue
			}
			s.driver.SetContent(col, row, render.HalfBlock, nil, s.getStyle(cell.Fg, cell.Bg))
		}
	}
	s.driver.Show()
	s.front = grid
	return prev, nil
}

// getStyle returns the cached truecolor style for a fg/bg pair. Alpha is
// already resolved by blending; only the color channels reach the terminal.
func (s *Screen) getStyle(fg, bg render.Pixel) tcell.Style {
	key := styleKey{fg: fg, bg: bg}
	if st, ok := s.styleCache[key]; ok {
		return st
	}
	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R()), int32(fg.G()), int32(fg.B()))).
		Background(tcell.NewRGBColor(int32(bg.R()), int32(bg.G()), int32(bg.B())))
	s.styleCache[key] = st
	return st
}

// Sync forces a full terminal repaint, used after SIGWINCH.
func (s *Screen) Sync() {
	s.mu.Lock()
	s.driver.Sync()
	// The terminal content is unknown after a resize; drop the diff
	// baseline so the next commit repaints everything.
	s.front = nil
	s.mu.Unlock()
}

// Events returns the input event stream. StartEvents must have been called.
func (s *Screen) Events() <-chan tcell.Event {
	return s.events
}

// StartEvents launches the polling goroutine feeding Events. It stops when
// the screen closes.
func (s *Screen) StartEvents() {
	go func() {
		for {
			ev := s.driver.PollEvent()
			if ev == nil {
				return
			}
			select {
			case s.events <- ev:
			case <-s.quit:
				return
			}
		}
	}()
}

// Done is closed when the screen shuts down.
func (s *Screen) Done() <-chan struct{} {
	return s.quit
}

// Close restores the terminal. Safe to call more than once and from any
// goroutine.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
		s.driver.Fini()
	})
}
