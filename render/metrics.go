// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/metrics.go
// Summary: Frame statistics reporting.

package render

import (
	"log"
	"time"

	"github.com/framegrace/texelwl/geom"
)

// FrameStats describes one finished frame.
type FrameStats struct {
	OutputSize   geom.Size
	Transform    Transform
	DrawCalls    int
	CellsTouched int
	Duration     time.Duration
}

// FrameObserver receives statistics for every finished frame. Observers run
// synchronously inside Finish and must be quick.
type FrameObserver interface {
	ObserveFrame(FrameStats)
}

// FrameStatsLogger logs one line per finished frame.
type FrameStatsLogger struct {
	logger *log.Logger
}

// NewFrameStatsLogger returns an observer writing to the given logger.
func NewFrameStatsLogger(logger *log.Logger) *FrameStatsLogger {
	return &FrameStatsLogger{logger: logger}
}

func (l *FrameStatsLogger) ObserveFrame(s FrameStats) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("frame: output=%dx%d transform=%s draws=%d cells=%d took=%s",
		s.OutputSize.W, s.OutputSize.H, s.Transform, s.DrawCalls, s.CellsTouched, s.Duration)
}
