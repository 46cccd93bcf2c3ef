// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: encoder/pipeline.go
// Summary: Frame hand-off channel between the render loop and the encoder.

package encoder

import (
	"context"
	"io"

	"github.com/framegrace/texelwl/render"
)

// pipelineDepth bounds how many frames may queue between the render loop and
// the encode consumer. Two is enough to keep the encoder busy without
// building latency.
const pipelineDepth = 2

// Pipeline decouples frame production from encoding. Producers never block:
// when the queue is full the offered frame is dropped, so a slow consumer
// skips frames instead of stalling the render loop. A nil frame is the reset
// sentinel telling the consumer its diff baseline is stale (e.g. after a
// resize).
//
// Pipeline implements render.Output, so a Framebuffer can commit straight
// into it.
type Pipeline struct {
	ch chan *render.CellGrid
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{ch: make(chan *render.CellGrid, pipelineDepth)}
}

// Send queues a frame without blocking. When the queue is full the frame is
// dropped; the consumer catches up with the next one. A nil grid queues the
// reset sentinel. Send reports whether the frame was queued.
func (p *Pipeline) Send(grid *render.CellGrid) bool {
	select {
	case p.ch <- grid:
		return true
	default:
		return false
	}
}

// Reset queues the reset sentinel.
func (p *Pipeline) Reset() {
	p.Send(nil)
}

// Commit clones the grid into the pipeline. The clone keeps the render
// loop's working grid free for the next frame while the encoder holds its
// copy as a baseline. Because the pipeline never retains the committed grid
// itself, it is handed straight back for the render loop to recycle.
func (p *Pipeline) Commit(grid *render.CellGrid) (*render.CellGrid, error) {
	p.Send(grid.Clone())
	return grid, nil
}

// Run consumes frames until the context is cancelled, encoding each one and
// writing the escape stream to w. Write failures are fatal: the terminal on
// the other end is gone.
func (p *Pipeline) Run(ctx context.Context, w io.Writer, enc *ANSI) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case grid := <-p.ch:
			if grid == nil {
				enc.Reset()
				continue
			}
			out := enc.Encode(grid)
			if len(out) == 0 {
				continue
			}
			if _, err := w.Write(out); err != nil {
				return err
			}
		}
	}
}
