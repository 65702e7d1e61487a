package runs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"repolens/internal/indexer"
	"repolens/internal/logging"
)

// Run is one recorded indexing pass.
type Run struct {
	ID        string                `json:"id"`
	RepoRoot  string                `json:"repoRoot"`
	StartedAt time.Time             `json:"startedAt"`
	Duration  time.Duration         `json:"duration"`
	Processed int                   `json:"processed"`
	Failed    int                   `json:"failed"`
	TimedOut  bool                  `json:"timedOut"`
	Failures  []indexer.FileFailure `json:"failures,omitempty"`
}

// Store persists run history in a SQLite database under the state
// directory.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// OpenStore opens or creates the run-history database.
func OpenStore(stateDir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, "runs.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize run schema: %w", err)
	}
	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			repo_root TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			processed INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			timed_out INTEGER NOT NULL DEFAULT 0,
			failures TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Record stores a finished indexing pass and returns its generated ID.
func (s *Store) Record(repoRoot string, startedAt time.Time, report *indexer.Report) (string, error) {
	id := uuid.New().String()

	var failuresJSON []byte
	if len(report.Failures) > 0 {
		var err error
		failuresJSON, err = json.Marshal(report.Failures)
		if err != nil {
			return "", fmt.Errorf("failed to encode failures: %w", err)
		}
	}

	_, err := s.conn.Exec(`
		INSERT INTO runs (id, repo_root, started_at, duration_ms, processed, failed, timed_out, failures)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		repoRoot,
		startedAt.UTC().Format(time.RFC3339),
		report.Duration.Milliseconds(),
		report.Processed,
		report.Failed,
		report.TimedOut,
		nullString(string(failuresJSON)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Debug("run recorded", map[string]interface{}{
		"runId":     id,
		"processed": report.Processed,
		"failed":    report.Failed,
	})
	return id, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(`
		SELECT id, repo_root, started_at, duration_ms, processed, failed, timed_out, failures
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			durationMs int64
			failures   sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.RepoRoot, &startedAt, &durationMs,
			&run.Processed, &run.Failed, &run.TimedOut, &failures); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		if failures.Valid && failures.String != "" {
			if err := json.Unmarshal([]byte(failures.String), &run.Failures); err != nil {
				return nil, fmt.Errorf("failed to decode failures: %w", err)
			}
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
