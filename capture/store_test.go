// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: capture/store_test.go
// Summary: Frame capture store tests against a temp SQLite database.

package capture

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/framegrace/texelwl/render"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "capture.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func coloredGrid(cols, rows int, p render.Pixel) *render.CellGrid {
	g := render.NewCellGrid(cols, rows)
	for i := range g.Cells {
		g.Cells[i].Fg = p
		g.Cells[i].Bg = p
	}
	return g
}

func TestRecordAndReplayFrame(t *testing.T) {
	s := openTestStore(t)

	g := coloredGrid(3, 2, render.RGB(10, 20, 30))
	at := time.Unix(100, 0)
	id, err := s.RecordFrame(g, at)
	if err != nil {
		t.Fatalf("RecordFrame: %v", err)
	}
	if id == 0 {
		t.Fatal("RecordFrame returned id 0 for a new frame")
	}

	got, ts, err := s.Frame(id)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !got.Equal(g) {
		t.Error("replayed frame differs from recorded one")
	}
	if !ts.Equal(at) {
		t.Errorf("timestamp = %v, want %v", ts, at)
	}
}

func TestRecordFrameCollapsesDuplicates(t *testing.T) {
	s := openTestStore(t)

	g := coloredGrid(2, 2, render.RGB(1, 1, 1))
	if _, err := s.RecordFrame(g, time.Unix(1, 0)); err != nil {
		t.Fatalf("first record: %v", err)
	}
	id, err := s.RecordFrame(g.Clone(), time.Unix(2, 0))
	if err != nil {
		t.Fatalf("duplicate record: %v", err)
	}
	if id != 0 {
		t.Errorf("duplicate frame stored with id %d", id)
	}

	n, err := s.FrameCount()
	if err != nil {
		t.Fatalf("FrameCount: %v", err)
	}
	if n != 1 {
		t.Errorf("FrameCount = %d, want 1", n)
	}
}

func TestFrameAtPicksLatestBefore(t *testing.T) {
	s := openTestStore(t)

	first := coloredGrid(1, 1, render.RGB(1, 0, 0))
	second := coloredGrid(1, 1, render.RGB(0, 1, 0))
	s.RecordFrame(first, time.Unix(10, 0))
	s.RecordFrame(second, time.Unix(20, 0))

	got, ts, err := s.FrameAt(time.Unix(15, 0))
	if err != nil {
		t.Fatalf("FrameAt: %v", err)
	}
	if !got.Equal(first) || !ts.Equal(time.Unix(10, 0)) {
		t.Errorf("FrameAt(15) = frame@%v, want frame@10", ts)
	}

	if _, _, err := s.FrameAt(time.Unix(5, 0)); !errors.Is(err, ErrNoFrame) {
		t.Errorf("FrameAt before capture err = %v, want ErrNoFrame", err)
	}
}

func TestFrameUnknownID(t *testing.T) {
	s := openTestStore(t)
	if _, _, err := s.Frame(42); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Frame(42) err = %v, want ErrNoFrame", err)
	}
}

func TestStoreReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	g := coloredGrid(2, 1, render.RGB(5, 5, 5))
	if _, err := s.RecordFrame(g, time.Unix(1, 0)); err != nil {
		t.Fatalf("RecordFrame: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	n, err := s.FrameCount()
	if err != nil {
		t.Fatalf("FrameCount: %v", err)
	}
	if n != 1 {
		t.Errorf("FrameCount after reopen = %d, want 1", n)
	}
}

func TestGridCodecRoundTrip(t *testing.T) {
	g := render.NewCellGrid(3, 2)
	g.At(0, 0).Fg = render.RGB(255, 0, 0)
	g.At(2, 1).Bg = render.NewPixel(1, 2, 3, 4)

	b, err := EncodeGrid(g)
	if err != nil {
		t.Fatalf("EncodeGrid: %v", err)
	}
	got, err := DecodeGrid(b)
	if err != nil {
		t.Fatalf("DecodeGrid: %v", err)
	}
	if !got.Equal(g) {
		t.Error("decoded grid differs")
	}

	if _, err := DecodeGrid(b[:len(b)-1]); !errors.Is(err, errPayloadShort) {
		t.Errorf("truncated decode err = %v, want errPayloadShort", err)
	}
	if _, err := DecodeGrid(nil); !errors.Is(err, errPayloadShort) {
		t.Errorf("empty decode err = %v, want errPayloadShort", err)
	}
}
