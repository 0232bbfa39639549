// Package storage persists the deadline snapshot: read once before a run,
// written once after it.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/util"
)

// Snapshot maps "ACRONYM_YEAR" keys to records
type Snapshot map[string]model.DeadlineRecord

// Get returns the record for key, or nil when absent
func (s Snapshot) Get(key model.ConferenceKey) *model.DeadlineRecord {
	rec, ok := s[key.String()]
	if !ok {
		return nil
	}
	return &rec
}

// Store is the JSON snapshot file
type Store struct {
	path string
}

// New creates a store at path; "~/" is expanded
func New(path string) *Store {
	return &Store{path: util.ExpandHome(path)}
}

// Path returns the resolved store path
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file is an empty snapshot; a corrupt one is an error.
func (s *Store) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Snapshot{}, nil
	}

	snap := Snapshot{}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", s.path, err)
	}
	return snap, nil
}

// Save replaces the store atomically with snap
func (s *Store) Save(snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Encode renders the snapshot as indented JSON with sorted keys and a trailing newline
func Encode(snap Snapshot) ([]byte, error) {
	if snap == nil {
		snap = Snapshot{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode store: %w", err)
	}
	return append(data, '\n'), nil
}

// Merge builds the next snapshot: every previous record is carried forward,
// produced records replace theirs, and a produced record that differs only in
// last_checked keeps the stored one so unchanged runs rewrite identical bytes.
func Merge(prev Snapshot, produced Snapshot) Snapshot {
	next := make(Snapshot, len(prev)+len(produced))
	for k, rec := range prev {
		next[k] = rec
	}
	for k, rec := range produced {
		if old, ok := prev[k]; ok && old.SameContent(rec) {
			continue
		}
		next[k] = rec
	}
	return next
}
