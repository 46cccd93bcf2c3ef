// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelwl-demo/main.go
// Summary: Demo compositor loop driving the half-block render engine.
// Usage: Run `texelwl-demo` in a terminal; `-stream` writes raw ANSI to stdout.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	xterm "golang.org/x/term"

	"github.com/framegrace/texelwl/capture"
	"github.com/framegrace/texelwl/config"
	"github.com/framegrace/texelwl/encoder"
	"github.com/framegrace/texelwl/geom"
	"github.com/framegrace/texelwl/render"
	"github.com/framegrace/texelwl/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.System()

	fs := flag.NewFlagSet("texelwl-demo", flag.ContinueOnError)
	stream := fs.Bool("stream", false, "Write raw ANSI to stdout instead of using tcell")
	fps := fs.Int("fps", cfg.GetInt("render", "fps", 30), "Target frames per second")
	transformName := fs.String("transform", cfg.GetString("render", "transform", "normal"), "Output transform (normal, 90, 180, 270, flipped, ...)")
	capturePath := fs.String("capture", cfg.GetString("capture", "path", ""), "Record frames into this SQLite database")
	logPath := fs.String("log", "texelwl-demo.log", "Log file path")
	stats := fs.Bool("stats", false, "Log per-frame statistics")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Printf("texelwl-demo starting (display %s)", cfg.GetString("", "display", ""))

	tr, err := parseTransform(*transformName)
	if err != nil {
		return err
	}
	if *fps < 1 {
		*fps = 1
	}

	renderer := render.NewRenderer()
	if *stats {
		renderer.SetObserver(render.NewFrameStatsLogger(log.Default()))
	}

	var store *capture.Store
	if *capturePath != "" || cfg.GetBool("capture", "enabled", false) {
		path := *capturePath
		if path == "" {
			path = filepath.Join(os.TempDir(), "texelwl-capture.db")
		}
		store, err = capture.Open(path)
		if err != nil {
			return fmt.Errorf("open capture store: %w", err)
		}
		defer store.Close()
		log.Printf("capturing frames to %s", path)
	}

	sc, err := newScene(renderer)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	if *stream {
		return runStream(renderer, sc, store, *fps, tr)
	}
	return runScreen(renderer, sc, store, *fps, tr)
}

// runScreen drives the tcell-backed output.
func runScreen(renderer *render.Renderer, sc *scene, store *capture.Store, fps int, tr render.Transform) error {
	tscreen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	scr, err := term.NewScreen(term.NewTcellScreenDriver(tscreen))
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer scr.Close()
	scr.StartEvents()

	fb := render.NewFramebuffer(scr)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			scr.Sync()
		case ev := <-scr.Events():
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyCtrlC,
					ev.Key() == tcell.KeyCtrlQ,
					ev.Key() == tcell.KeyEscape,
					ev.Rune() == 'q':
					return nil
				}
			case *tcell.EventResize:
				scr.Sync()
			}
		case now := <-ticker.C:
			size := scr.PixelSize()
			err := renderer.WithFrame(fb, size, tr, func(f *render.Frame) error {
				return sc.draw(f, size, now)
			})
			if err != nil {
				return fmt.Errorf("render frame: %w", err)
			}
			if err := recordFrame(store, fb, now); err != nil {
				return err
			}
		case <-scr.Done():
			return nil
		}
	}
}

// runStream drives the ANSI pipeline straight to stdout.
func runStream(renderer *render.Renderer, sc *scene, store *capture.Store, fps int, tr render.Transform) error {
	fd := int(os.Stdout.Fd())
	if !xterm.IsTerminal(fd) {
		return fmt.Errorf("stdout is not a terminal")
	}

	pipe := encoder.NewPipeline()
	fb := render.NewFramebuffer(pipe)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	encErr := make(chan error, 1)
	go func() {
		encErr <- pipe.Run(ctx, os.Stdout, encoder.NewANSI())
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	size, err := streamSize(fd)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigChan:
			if sig == syscall.SIGWINCH {
				size, err = streamSize(fd)
				if err != nil {
					return err
				}
				pipe.Reset()
				continue
			}
			return nil
		case err := <-encErr:
			return err
		case now := <-ticker.C:
			err := renderer.WithFrame(fb, size, tr, func(f *render.Frame) error {
				return sc.draw(f, size, now)
			})
			if err != nil {
				return fmt.Errorf("render frame: %w", err)
			}
			if err := recordFrame(store, fb, now); err != nil {
				return err
			}
		}
	}
}

func streamSize(fd int) (geom.Size, error) {
	cols, rows, err := xterm.GetSize(fd)
	if err != nil {
		return geom.Size{}, fmt.Errorf("query terminal size: %w", err)
	}
	return geom.Size{W: cols, H: rows * 2}, nil
}

func recordFrame(store *capture.Store, fb *render.Framebuffer, at time.Time) error {
	if store == nil || fb.Grid() == nil {
		return nil
	}
	if _, err := store.RecordFrame(fb.Grid(), at); err != nil {
		return fmt.Errorf("record frame: %w", err)
	}
	return nil
}

func parseTransform(name string) (render.Transform, error) {
	switch name {
	case "normal", "":
		return render.TransformNormal, nil
	case "90":
		return render.Transform90, nil
	case "180":
		return render.Transform180, nil
	case "270":
		return render.Transform270, nil
	case "flipped":
		return render.TransformFlipped, nil
	case "flipped-90":
		return render.TransformFlipped90, nil
	case "flipped-180":
		return render.TransformFlipped180, nil
	case "flipped-270":
		return render.TransformFlipped270, nil
	}
	return 0, fmt.Errorf("unknown transform %q", name)
}
