// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/shm_test.go
// Summary: Shared-memory import and per-surface cache tests.

package render

import (
	"errors"
	"testing"

	"github.com/framegrace/texelwl/geom"
)

func shmBuf(words []uint32, format uint32, w, h int) ShmBuffer {
	return ShmBuffer{
		Data:   packWords(words...),
		Format: format,
		Width:  w,
		Height: h,
		Stride: w * 4,
	}
}

func TestImportShmBufferDecodes(t *testing.T) {
	r := NewRenderer()
	surface := NewSurface()

	// wl_shm 0 = ARGB8888, 1 = XRGB8888.
	buf := shmBuf([]uint32{0x80FF0000}, 0, 1, 1)
	tex, err := r.ImportShmBuffer(surface, buf, nil)
	if err != nil {
		t.Fatalf("ImportShmBuffer: %v", err)
	}
	if got := tex.At(0, 0); got != NewPixel(255, 0, 0, 0x80) {
		t.Errorf("decoded = %08x", got)
	}

	buf.Format = 1
	tex, err = r.ImportShmBuffer(nil, buf, nil)
	if err != nil {
		t.Fatalf("ImportShmBuffer xrgb: %v", err)
	}
	if got := tex.At(0, 0); got != RGB(255, 0, 0) {
		t.Errorf("xrgb decoded = %08x, want opaque red", got)
	}
}

func TestImportShmBufferUpdatesCachedInPlace(t *testing.T) {
	r := NewRenderer()
	surface := NewSurface()

	buf := shmBuf([]uint32{0xFF000000, 0xFF000000}, 0, 2, 1)
	first, err := r.ImportShmBuffer(surface, buf, nil)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}

	// Same geometry, new content, damage on the right pixel only: the
	// cached texture is refreshed in place and returned.
	buf = shmBuf([]uint32{0xFFFF0000, 0xFF00FF00}, 0, 2, 1)
	second, err := r.ImportShmBuffer(surface, buf, []geom.Rect{{X: 1, Y: 0, W: 1, H: 1}})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if first != second {
		t.Fatal("cached texture not reused for same-size commit")
	}
	if got := second.At(0, 0); got != RGB(0, 0, 0) {
		t.Errorf("undamaged texel rewritten: %08x", got)
	}
	if got := second.At(1, 0); got != RGB(0, 255, 0) {
		t.Errorf("damaged texel = %08x, want green", got)
	}
}

func TestImportShmBufferReplacesOnResize(t *testing.T) {
	r := NewRenderer()
	surface := NewSurface()

	first, err := r.ImportShmBuffer(surface, shmBuf([]uint32{0}, 0, 1, 1), nil)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	second, err := r.ImportShmBuffer(surface, shmBuf([]uint32{0, 0}, 0, 2, 1), nil)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if first == second {
		t.Fatal("resized buffer reused old texture")
	}
	if second.Width() != 2 {
		t.Errorf("replacement width = %d, want 2", second.Width())
	}
}

func TestImportShmBufferCacheIsPerRenderer(t *testing.T) {
	r1 := NewRenderer()
	r2 := NewRenderer()
	if r1.ContextID() == r2.ContextID() {
		t.Fatal("renderers share a ContextID")
	}
	surface := NewSurface()

	buf := shmBuf([]uint32{0xFF102030}, 0, 1, 1)
	t1, err := r1.ImportShmBuffer(surface, buf, nil)
	if err != nil {
		t.Fatalf("r1 import: %v", err)
	}
	t2, err := r2.ImportShmBuffer(surface, buf, nil)
	if err != nil {
		t.Fatalf("r2 import: %v", err)
	}
	if t1 == t2 {
		t.Fatal("renderers share a cached texture")
	}

	// Each renderer keeps hitting its own slot.
	again, _ := r1.ImportShmBuffer(surface, buf, nil)
	if again != t1 {
		t.Error("r1 lost its cache slot to r2")
	}
}

func TestImportShmBufferUnsupportedFormat(t *testing.T) {
	r := NewRenderer()
	buf := shmBuf([]uint32{0}, 0x31313131, 1, 1)
	_, err := r.ImportShmBuffer(nil, buf, nil)
	var ufe *UnsupportedShmFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("err = %v, want UnsupportedShmFormatError", err)
	}
	if ufe.Value != 0x31313131 {
		t.Errorf("error value = %08x", ufe.Value)
	}
}

func TestDropCache(t *testing.T) {
	r := NewRenderer()
	surface := NewSurface()
	buf := shmBuf([]uint32{0}, 0, 1, 1)

	first, _ := r.ImportShmBuffer(surface, buf, nil)
	r.DropCache(surface)
	second, _ := r.ImportShmBuffer(surface, buf, nil)
	if first == second {
		t.Fatal("DropCache left the cached texture in place")
	}
	r.DropCache(nil)
}
