package runs

import (
	"io"
	"testing"
	"time"

	"repolens/internal/indexer"
	"repolens/internal/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := logging.NewLogger(logging.Config{
		Format: logging.JSONFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
	store, err := OpenStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)

	first := &indexer.Report{
		Processed: 9,
		Failed:    1,
		Failures:  []indexer.FileFailure{{Path: "src/F04.java", Error: "unparseable source"}},
		Duration:  120 * time.Millisecond,
	}
	firstID, err := store.Record("/repo", time.Now().Add(-time.Minute), first)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if firstID == "" {
		t.Fatal("expected generated run ID")
	}

	second := &indexer.Report{Processed: 10, Duration: 80 * time.Millisecond}
	if _, err := store.Record("/repo", time.Now(), second); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := store.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Processed != 10 {
		t.Errorf("newest run first, got processed=%d", runs[0].Processed)
	}
	if runs[1].ID != firstID {
		t.Errorf("run ID %s, want %s", runs[1].ID, firstID)
	}
	if len(runs[1].Failures) != 1 || runs[1].Failures[0].Path != "src/F04.java" {
		t.Errorf("failures not round-tripped: %+v", runs[1].Failures)
	}
	if runs[1].Duration != 120*time.Millisecond {
		t.Errorf("duration = %v, want 120ms", runs[1].Duration)
	}
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t)
	runs, err := store.List(5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want none", len(runs))
	}
}
