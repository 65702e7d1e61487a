// Package index provides the repository-wide store of per-file structural
// facts and its persisted snapshot form.
package index

import (
	"sort"
	"sync"

	"repolens/internal/model"
)

// Store maps file paths to their extracted records. Merge replaces the entry
// for a path wholesale; concurrent merges for different paths are safe, and
// concurrent merges for the same path are last-write-wins.
type Store struct {
	mu    sync.RWMutex
	files map[string]*model.SourceFileRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{files: make(map[string]*model.SourceFileRecord)}
}

// Merge replaces any existing record for path. The record is cloned on the
// way in so callers cannot mutate store state afterwards; the critical
// section covers only the map write.
func (s *Store) Merge(path string, rec *model.SourceFileRecord) {
	if rec == nil {
		return
	}
	clone := rec.Clone()
	clone.Path = path

	s.mu.Lock()
	s.files[path] = clone
	s.mu.Unlock()
}

// Get returns a copy of the record for path, or nil when absent.
func (s *Store) Get(path string) *model.SourceFileRecord {
	s.mu.RLock()
	rec := s.files[path]
	s.mu.RUnlock()
	return rec.Clone()
}

// Len returns the number of indexed files.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Snapshot returns an immutable deep copy of the store for downstream
// passes. Later merges never show through a snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(Snapshot, len(s.files))
	for path, rec := range s.files {
		snap[path] = rec.Clone()
	}
	return snap
}

// Snapshot is a point-in-time view of the store, keyed by file path. It is
// also the persisted JSON form.
type Snapshot map[string]*model.SourceFileRecord

// SortedPaths returns the snapshot's paths in lexical order. Downstream
// passes iterate in this order so results are independent of extraction
// completion order.
func (sn Snapshot) SortedPaths() []string {
	paths := make([]string, 0, len(sn))
	for p := range sn {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Load replaces the store contents with the given snapshot.
func (s *Store) Load(snap Snapshot) {
	files := make(map[string]*model.SourceFileRecord, len(snap))
	for path, rec := range snap {
		clone := rec.Clone()
		clone.Path = path
		files[path] = clone
	}

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()
}
