// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: capture/codec.go
// Summary: Compact binary codec for stored cell grids.

package capture

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"errors"

	"github.com/framegrace/texelwl/render"
)

var (
	ErrGridTooLarge = errors.New("capture: grid exceeds codec limits")
	errPayloadShort = errors.New("capture: payload truncated")
)

// EncodeGrid serialises a grid as cols, rows and per-cell fg/bg words, all
// little-endian.
func EncodeGrid(g *render.CellGrid) ([]byte, error) {
	if g.Cols > 0xFFFF || g.Rows > 0xFFFF {
		return nil, ErrGridTooLarge
	}
	buf := bytes.NewBuffer(make([]byte, 0, 4+len(g.Cells)*8))
	if err := binary.Write(buf, binary.LittleEndian, uint16(g.Cols)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(g.Rows)); err != nil {
		return nil, err
	}
	for _, c := range g.Cells {
		if err := binary.Write(buf, binary.LittleEndian, uint32(c.Fg)); err != nil {
			return nil, err
		}
		if err := binary.Write(buf, binary.LittleEndian, uint32(c.Bg)); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeGrid reverses EncodeGrid.
func DecodeGrid(b []byte) (*render.CellGrid, error) {
	if len(b) < 4 {
		return nil, errPayloadShort
	}
	cols := int(binary.LittleEndian.Uint16(b[:2]))
	rows := int(binary.LittleEndian.Uint16(b[2:4]))
	b = b[4:]
	if len(b) < cols*rows*8 {
		return nil, errPayloadShort
	}
	g := render.NewCellGrid(cols, rows)
	for i := range g.Cells {
		g.Cells[i].Fg = render.Pixel(binary.LittleEndian.Uint32(b[i*8:]))
		g.Cells[i].Bg = render.Pixel(binary.LittleEndian.Uint32(b[i*8+4:]))
	}
	return g, nil
}

// gridHash fingerprints an encoded grid for duplicate-frame detection.
func gridHash(encoded []byte) []byte {
	sum := sha1.Sum(encoded)
	return sum[:]
}
