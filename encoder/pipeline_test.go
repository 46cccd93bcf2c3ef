// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: encoder/pipeline_test.go
// Summary: Frame pipeline hand-off tests.

package encoder

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/framegrace/texelwl/render"
)

func TestSendNeverBlocks(t *testing.T) {
	p := NewPipeline()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.Send(render.NewCellGrid(1, 1))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Send blocked with no consumer")
	}
}

func TestSendDropsOfferedFrameWhenFull(t *testing.T) {
	p := NewPipeline()
	a := render.NewCellGrid(1, 1)
	b := render.NewCellGrid(2, 1)
	c := render.NewCellGrid(3, 1)
	if !p.Send(a) || !p.Send(b) {
		t.Fatal("sends below capacity were dropped")
	}
	if p.Send(c) {
		t.Error("send into a full queue reported queued")
	}

	// Queued frames survive in order; the overflowing frame is gone.
	if first := <-p.ch; first != a {
		t.Errorf("first receive = %v, want the oldest queued frame", first)
	}
	if second := <-p.ch; second != b {
		t.Errorf("second receive = %v, want b", second)
	}
	select {
	case extra := <-p.ch:
		t.Errorf("dropped frame was queued anyway: %v", extra)
	default:
	}
}

func TestCommitClonesGrid(t *testing.T) {
	p := NewPipeline()
	g := render.NewCellGrid(1, 1)
	g.At(0, 0).Bg = render.RGB(1, 2, 3)

	prev, err := p.Commit(g)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if prev != g {
		t.Error("Commit did not hand the unretained grid back for recycling")
	}
	queued := <-p.ch
	if queued == g {
		t.Fatal("pipeline queued the working grid itself")
	}
	if !queued.Equal(g) {
		t.Error("queued clone differs from committed grid")
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunEncodesFramesAndResets(t *testing.T) {
	p := NewPipeline()
	var out lockedBuffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Run(ctx, &out, NewANSI())
	}()

	g := render.NewCellGrid(1, 1)
	g.At(0, 0).Bg = render.RGB(255, 0, 0)
	p.Send(g)

	waitFor(t, func() bool { return strings.Contains(out.String(), "\x1b[48;2;255;0;0m") })

	// Reset then resend: the encoder repaints from scratch.
	p.Reset()
	p.Send(g.Clone())
	waitFor(t, func() bool { return strings.Count(out.String(), "\x1b[2J") == 2 })

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestRunStopsOnWriteError(t *testing.T) {
	p := NewPipeline()
	wantErr := errors.New("pty closed")
	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Run(context.Background(), failingWriter{err: wantErr}, NewANSI())
	}()

	p.Send(render.NewCellGrid(1, 1))
	select {
	case err := <-errCh:
		if !errors.Is(err, wantErr) {
			t.Fatalf("Run err = %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on write error")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never met")
}
