// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/shm.go
// Summary: Shared-memory buffer import with the per-surface texture cache.

package render

import (
	"sync"

	"github.com/framegrace/texelwl/fourcc"
	"github.com/framegrace/texelwl/geom"
)

// ShmBuffer describes a client's shared-memory pixel buffer: the mapped pool
// bytes plus the geometry the client declared for this buffer within it.
// Format is a wl_shm format value.
type ShmBuffer struct {
	Data   []byte
	Format uint32
	Width  int
	Height int
	Stride int
	Offset int
}

// Surface holds the per-surface texture cache, keyed by renderer identity so
// several renderers can cache against the same surface independently. The
// surface-tracking layer owns Surface values; the renderer only reads and
// updates the slot for its own ContextID.
//
// The mutex guards the cache slot for the whole decode-and-write, which
// serialises the one allowed texture mutation (update-in-place re-import)
// against concurrent readers of the cached texture.
type Surface struct {
	mu       sync.Mutex
	textures map[ContextID]*Texture
}

// NewSurface returns a surface with an empty texture cache.
func NewSurface() *Surface {
	return &Surface{textures: make(map[ContextID]*Texture)}
}

// ImportShmBuffer converts a shared-memory buffer into a Texture. When the
// surface already caches a texture of identical size for this renderer, the
// damaged regions are decoded straight into it instead of allocating a new
// texture; otherwise a fresh import replaces the cache entry. A nil surface
// disables caching.
func (r *Renderer) ImportShmBuffer(surface *Surface, buf ShmBuffer, damage []geom.Rect) (*Texture, error) {
	format, ok := fourcc.FromShmCode(buf.Format)
	if !ok {
		return nil, &UnsupportedShmFormatError{Value: buf.Format}
	}
	if !validTextureSize(buf.Width, buf.Height) {
		return nil, ErrTextureTooBig
	}

	if surface != nil {
		surface.mu.Lock()
		defer surface.mu.Unlock()

		if cached := surface.textures[r.ContextID()]; cached != nil &&
			cached.width == buf.Width && cached.height == buf.Height {
			fmtTag, _ := cached.Format()
			if fmtTag == format {
				if err := r.updateShm(cached, buf, damage); err != nil {
					return nil, err
				}
				return cached, nil
			}
		}
	}

	tex := newTexture(buf.Width, buf.Height, format)
	bounds := geom.Rect{W: buf.Width, H: buf.Height}
	if err := decodeInto(tex, buf.Data, buf.Offset, buf.Stride, bounds, false); err != nil {
		return nil, err
	}
	if surface != nil {
		surface.textures[r.ContextID()] = tex
	}
	return tex, nil
}

// updateShm re-decodes the damaged regions of the buffer into the cached
// texture. Without declared damage there is nothing to refresh.
func (r *Renderer) updateShm(tex *Texture, buf ShmBuffer, damage []geom.Rect) error {
	bounds := geom.Rect{W: tex.width, H: tex.height}
	for _, d := range damage {
		region := d.Intersect(bounds)
		if region.Empty() {
			continue
		}
		if err := decodeInto(tex, buf.Data, buf.Offset, buf.Stride, region, false); err != nil {
			return err
		}
	}
	return nil
}

// DropCache removes this renderer's cached texture from the surface, used
// when a surface is destroyed or its buffer geometry changes permanently.
func (r *Renderer) DropCache(surface *Surface) {
	if surface == nil {
		return
	}
	surface.mu.Lock()
	delete(surface.textures, r.ContextID())
	surface.mu.Unlock()
}
