// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: encoder/ansi_test.go
// Summary: ANSI escape stream encoder tests.

package encoder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/framegrace/texelwl/render"
)

func grid1x1(fg, bg render.Pixel) *render.CellGrid {
	g := render.NewCellGrid(1, 1)
	g.At(0, 0).Fg = fg
	g.At(0, 0).Bg = bg
	return g
}

func TestEncodeFirstFrameClearsAndPaints(t *testing.T) {
	enc := NewANSI()
	out := string(enc.Encode(grid1x1(render.RGB(0, 0, 255), render.RGB(255, 0, 0))))

	if !strings.HasPrefix(out, "\x1b[2J") {
		t.Errorf("first frame missing clear: %q", out)
	}
	for _, want := range []string{
		"\x1b[1;1H",
		"\x1b[38;2;0;0;255m",
		"\x1b[48;2;255;0;0m",
		string(render.HalfBlock),
		"\x1b[0m",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestEncodeDiffsUnchangedCells(t *testing.T) {
	enc := NewANSI()
	g := render.NewCellGrid(2, 1)
	enc.Encode(g)

	next := g.Clone()
	next.At(1, 0).Bg = render.RGB(0, 255, 0)
	out := string(enc.Encode(next))

	if strings.Contains(out, "\x1b[2J") {
		t.Errorf("diff frame cleared the screen: %q", out)
	}
	if got := strings.Count(out, string(render.HalfBlock)); got != 1 {
		t.Errorf("diff frame drew %d cells, want 1", got)
	}
	if !strings.Contains(out, "\x1b[1;2H") {
		t.Errorf("diff frame missing cursor move to changed cell: %q", out)
	}
}

func TestEncodeIdenticalFrameIsEmpty(t *testing.T) {
	enc := NewANSI()
	g := grid1x1(render.RGB(1, 2, 3), render.RGB(4, 5, 6))
	enc.Encode(g)
	if out := enc.Encode(g.Clone()); len(out) != 0 {
		t.Errorf("identical frame produced output %q", out)
	}
}

func TestEncodeOmitsRedundantMoves(t *testing.T) {
	enc := NewANSI()
	g := render.NewCellGrid(3, 1)
	for col := 0; col < 3; col++ {
		g.At(col, 0).Bg = render.RGB(9, 9, 9)
	}
	out := string(enc.Encode(g))

	// Three adjacent cells on one row need one cursor move; the same
	// fg/bg pair needs one SGR pair.
	if got := strings.Count(out, "H"); got != 1 {
		t.Errorf("cursor moves = %d, want 1: %q", got, out)
	}
	if got := strings.Count(out, "\x1b[48;2;"); got != 1 {
		t.Errorf("bg SGRs = %d, want 1: %q", got, out)
	}
}

func TestResetForcesRepaint(t *testing.T) {
	enc := NewANSI()
	g := grid1x1(0, 0)
	enc.Encode(g)
	enc.Reset()
	out := string(enc.Encode(g.Clone()))
	if !strings.HasPrefix(out, "\x1b[2J") {
		t.Errorf("post-reset frame missing clear: %q", out)
	}
}

func TestEncodeRepaintsOnGeometryChange(t *testing.T) {
	enc := NewANSI()
	enc.Encode(render.NewCellGrid(2, 1))
	out := enc.Encode(render.NewCellGrid(3, 2))
	if !bytes.HasPrefix(out, []byte("\x1b[2J")) {
		t.Errorf("resized frame missing clear: %q", out)
	}
	if got := bytes.Count(out, []byte(string(render.HalfBlock))); got != 6 {
		t.Errorf("resized frame drew %d cells, want 6", got)
	}
}
