// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelwl-demo/scene.go
// Summary: Procedural demo scene rendered through the import pipeline.

package main

import (
	"encoding/binary"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelwl/fourcc"
	"github.com/framegrace/texelwl/geom"
	"github.com/framegrace/texelwl/render"
)

const spriteSize = 24

// scene drives the demo content: a plasma background committed through the
// shared-memory path (exercising the per-surface texture cache) and a
// translucent sprite blitted over it.
type scene struct {
	renderer *render.Renderer
	surface  *render.Surface
	pool     []byte
	size     geom.Size
	sprite   *render.Texture
	start    time.Time
}

func newScene(r *render.Renderer) (*scene, error) {
	sprite, err := r.ImportMemory(spritePixels(), fourcc.Argb8888,
		geom.Size{W: spriteSize, H: spriteSize}, false)
	if err != nil {
		return nil, err
	}
	return &scene{
		renderer: r,
		surface:  render.NewSurface(),
		sprite:   sprite,
		start:    time.Now(),
	}, nil
}

// draw renders one frame of the scene at the given output size.
func (s *scene) draw(frame *render.Frame, size geom.Size, now time.Time) error {
	if size.Empty() {
		return nil
	}
	if size != s.size {
		s.size = size
		s.pool = make([]byte, size.W*size.H*4)
		s.renderer.DropCache(s.surface)
	}

	t := now.Sub(s.start).Seconds()
	s.writePlasma(t)

	full := []geom.Rect{geom.FromSize(size)}
	tex, err := s.renderer.ImportShmBuffer(s.surface, render.ShmBuffer{
		Data:   s.pool,
		Format: 1, // XRGB8888
		Width:  size.W,
		Height: size.H,
		Stride: size.W * 4,
	}, full)
	if err != nil {
		return err
	}
	if err := frame.Blit(tex, geom.FromSize(size), geom.FromSize(size), full, 1.0); err != nil {
		return err
	}

	// Orbiting translucent sprite.
	cx := float64(size.W-spriteSize) / 2
	cy := float64(size.H-spriteSize) / 2
	dst := geom.Rect{
		X: int(cx + cx*math.Cos(t/2)),
		Y: int(cy + cy*math.Sin(t/3)),
		W: spriteSize,
		H: spriteSize,
	}
	src := geom.Rect{W: spriteSize, H: spriteSize}
	return frame.Blit(s.sprite, src, dst, full, 0.8)
}

// writePlasma fills the shm pool with a slowly drifting hue field.
func (s *scene) writePlasma(t float64) {
	w, h := s.size.W, s.size.H
	for y := 0; y < h; y++ {
		fy := float64(y) / float64(h)
		for x := 0; x < w; x++ {
			fx := float64(x) / float64(w)
			v := math.Sin(fx*6+t) + math.Sin(fy*4-t/2) + math.Sin((fx+fy)*5+t/3)
			hue := math.Mod(v*60+t*20+360*4, 360)
			c := colorful.Hsv(hue, 0.7, 0.9)
			word := uint32(0xFF)<<24 |
				uint32(c.R*255)<<16 |
				uint32(c.G*255)<<8 |
				uint32(c.B*255)
			binary.LittleEndian.PutUint32(s.pool[(y*w+x)*4:], word)
		}
	}
}

// spritePixels builds a soft radial blob with alpha falling off to the rim.
func spritePixels() []byte {
	buf := make([]byte, spriteSize*spriteSize*4)
	mid := float64(spriteSize-1) / 2
	for y := 0; y < spriteSize; y++ {
		for x := 0; x < spriteSize; x++ {
			dx := (float64(x) - mid) / mid
			dy := (float64(y) - mid) / mid
			d := math.Sqrt(dx*dx + dy*dy)
			a := 0.0
			if d < 1 {
				a = 1 - d
			}
			c := colorful.Hsv(200+d*80, 0.4, 1)
			word := uint32(a*255)<<24 |
				uint32(c.R*255)<<16 |
				uint32(c.G*255)<<8 |
				uint32(c.B*255)
			binary.LittleEndian.PutUint32(buf[(y*spriteSize+x)*4:], word)
		}
	}
	return buf
}
