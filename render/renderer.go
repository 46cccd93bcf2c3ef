// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/renderer.go
// Summary: Renderer identity and the frame lifecycle entry points.

package render

import (
	"sync/atomic"
	"time"

	"github.com/framegrace/texelwl/geom"
)

// ContextID identifies one Renderer instance for the lifetime of the
// process. Texture caches are keyed by it, so two renderers never trample
// each other's cached imports on a shared surface.
type ContextID uint64

var nextContextID atomic.Uint64

// Renderer converts client pixel buffers into textures and opens frames that
// composite them into a Framebuffer. A Renderer is cheap; the heavy state
// (grids, cached textures) lives in Framebuffers and Surfaces.
type Renderer struct {
	id       ContextID
	observer FrameObserver
}

// NewRenderer returns a renderer with a fresh context identity.
func NewRenderer() *Renderer {
	return &Renderer{id: ContextID(nextContextID.Add(1))}
}

// ContextID returns the renderer's stable identity.
func (r *Renderer) ContextID() ContextID {
	return r.id
}

// SetObserver installs a frame statistics sink. A nil observer disables
// reporting. Not safe to call around an open frame.
func (r *Renderer) SetObserver(obs FrameObserver) {
	r.observer = obs
}

// Render opens a frame against the framebuffer. The grid is reconciled with
// outputSize (logical pixels) first, discarding stale content on mismatch, so
// every draw call of the frame sees the final geometry. Only one frame may be
// open per framebuffer; a second Render before Finish returns ErrFrameOpen.
func (r *Renderer) Render(fb *Framebuffer, outputSize geom.Size, tr Transform) (*Frame, error) {
	if fb.frameOpen {
		return nil, ErrFrameOpen
	}
	fb.resizeIfNeeded(outputSize)
	fb.frameOpen = true
	return &Frame{
		renderer:   r,
		fb:         fb,
		outputSize: outputSize,
		transform:  tr,
		started:    time.Now(),
	}, nil
}

// WithFrame runs fn inside a frame and guarantees the commit on every exit
// path, including panics. The draw error wins over the commit error when both
// occur.
func (r *Renderer) WithFrame(fb *Framebuffer, outputSize geom.Size, tr Transform, fn func(*Frame) error) error {
	frame, err := r.Render(fb, outputSize, tr)
	if err != nil {
		return err
	}
	defer frame.Finish()

	if err := fn(frame); err != nil {
		return err
	}
	return frame.Finish()
}
