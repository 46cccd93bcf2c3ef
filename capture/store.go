// Copyright © 2025 Texelwl contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: capture/store.go
// Summary: SQLite-backed frame capture store for session replay.

package capture

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelwl/render"
)

// ErrNoFrame is returned when no captured frame matches a query.
var ErrNoFrame = errors.New("capture: no frame")

// Current schema version - increment when schema changes require recapture.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS frames (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,       -- UnixNano
    hash BLOB NOT NULL,
    cols INTEGER NOT NULL,
    rows INTEGER NOT NULL,
    data BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_frames_timestamp ON frames(timestamp);
`

// Store records committed frames into SQLite so a session can be replayed or
// inspected offline. Consecutive identical frames are collapsed: a commit
// whose content hash matches the latest stored frame is skipped.
type Store struct {
	db       *sql.DB
	lastHash []byte
}

// Open opens or creates the capture database at path. An on-disk schema
// version older than the current one drops the captured frames and starts
// over.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", path, err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("capture: create schema: %w", err)
	}

	var version int
	err := db.QueryRow(`SELECT version FROM schema_version`).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = db.Exec(`INSERT INTO schema_version(version) VALUES (?)`, schemaVersion)
		return err
	case err != nil:
		return fmt.Errorf("capture: read schema version: %w", err)
	case version != schemaVersion:
		if _, err := db.Exec(`DELETE FROM frames`); err != nil {
			return err
		}
		_, err = db.Exec(`UPDATE schema_version SET version = ?`, schemaVersion)
		return err
	}
	return nil
}

// RecordFrame stores a frame with its capture time and returns the frame id.
// A frame identical to the previously recorded one returns id 0 and stores
// nothing.
func (s *Store) RecordFrame(g *render.CellGrid, at time.Time) (int64, error) {
	encoded, err := EncodeGrid(g)
	if err != nil {
		return 0, err
	}
	hash := gridHash(encoded)
	if s.lastHash != nil && bytes.Equal(hash, s.lastHash) {
		return 0, nil
	}

	res, err := s.db.Exec(
		`INSERT INTO frames(timestamp, hash, cols, rows, data) VALUES (?, ?, ?, ?, ?)`,
		at.UnixNano(), hash, g.Cols, g.Rows, encoded)
	if err != nil {
		return 0, fmt.Errorf("capture: record frame: %w", err)
	}
	s.lastHash = hash
	return res.LastInsertId()
}

// FrameAt returns the frame visible at time t: the latest frame captured at
// or before it. ErrNoFrame means t precedes the capture.
func (s *Store) FrameAt(t time.Time) (*render.CellGrid, time.Time, error) {
	var (
		ts   int64
		data []byte
	)
	err := s.db.QueryRow(
		`SELECT timestamp, data FROM frames WHERE timestamp <= ? ORDER BY timestamp DESC LIMIT 1`,
		t.UnixNano()).Scan(&ts, &data)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoFrame
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("capture: query frame: %w", err)
	}
	g, err := DecodeGrid(data)
	if err != nil {
		return nil, time.Time{}, err
	}
	return g, time.Unix(0, ts), nil
}

// Frame returns a captured frame by id.
func (s *Store) Frame(id int64) (*render.CellGrid, time.Time, error) {
	var (
		ts   int64
		data []byte
	)
	err := s.db.QueryRow(`SELECT timestamp, data FROM frames WHERE id = ?`, id).Scan(&ts, &data)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoFrame
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("capture: query frame: %w", err)
	}
	g, err := DecodeGrid(data)
	if err != nil {
		return nil, time.Time{}, err
	}
	return g, time.Unix(0, ts), nil
}

// FrameCount returns the number of captured frames.
func (s *Store) FrameCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM frames`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
