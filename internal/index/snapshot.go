package index

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	lenserr "repolens/internal/errors"
	"repolens/internal/logging"
)

// ReadSnapshot loads a persisted snapshot from disk. A missing or malformed
// file degrades to an empty snapshot with a warning; the returned error is
// informational (SNAPSHOT_LOAD_FAILED) and never fatal.
//
// Paths ending in ".gz" are transparently gzip-decoded.
func ReadSnapshot(path string, logger *logging.Logger) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Snapshot file not found, starting with empty index", map[string]interface{}{
				"path": path,
			})
			return Snapshot{}, nil
		}
		logger.Warn("Snapshot unreadable, starting with empty index", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return Snapshot{}, lenserr.NewPath(lenserr.SnapshotLoadFailed, path, "open snapshot", err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			logger.Warn("Snapshot gzip header invalid, starting with empty index", map[string]interface{}{
				"path":  path,
				"error": gzErr.Error(),
			})
			return Snapshot{}, lenserr.NewPath(lenserr.SnapshotLoadFailed, path, "decode gzip snapshot", gzErr)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	var snap Snapshot
	if err := json.NewDecoder(reader).Decode(&snap); err != nil {
		logger.Warn("Snapshot malformed, starting with empty index", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return Snapshot{}, lenserr.NewPath(lenserr.SnapshotLoadFailed, path, "decode snapshot", err)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// WriteSnapshot persists a snapshot as human-inspectable JSON (gzip-wrapped
// when path ends in ".gz"). Parent directories are created as needed.
func WriteSnapshot(path string, snap Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return lenserr.NewPath(lenserr.SnapshotWriteFailed, path, "create snapshot directory", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return lenserr.NewPath(lenserr.SnapshotWriteFailed, path, "create snapshot file", err)
	}

	var writer io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		writer = gz
	}

	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		_ = f.Close()
		return lenserr.NewPath(lenserr.SnapshotWriteFailed, path, "encode snapshot", err)
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			_ = f.Close()
			return lenserr.NewPath(lenserr.SnapshotWriteFailed, path, "flush gzip snapshot", err)
		}
	}
	if err := f.Close(); err != nil {
		return lenserr.NewPath(lenserr.SnapshotWriteFailed, path, "close snapshot file", err)
	}
	return nil
}

// LoadFrom initializes the store from a persisted snapshot, degrading to an
// empty store when the snapshot is missing or corrupt.
func (s *Store) LoadFrom(path string, logger *logging.Logger) {
	snap, _ := ReadSnapshot(path, logger)
	s.Load(snap)
}

// Persist writes the store's current state to path.
func (s *Store) Persist(path string) error {
	return WriteSnapshot(path, s.Snapshot())
}
