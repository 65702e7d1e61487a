package indexer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	lenserr "repolens/internal/errors"
	"repolens/internal/index"
	"repolens/internal/logging"
	"repolens/internal/model"
)

type fakeExtractor struct {
	failOn map[string]bool
	delay  time.Duration
	panics map[string]bool
	calls  int64
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (*model.SourceFileRecord, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panics[path] {
		panic("bad parse state")
	}
	if f.failOn[path] {
		return nil, lenserr.NewPath(lenserr.ExtractionFailed, path, "unparseable source", nil)
	}
	name := strings.TrimSuffix(path, ".java")
	return &model.SourceFileRecord{
		Path:    path,
		Package: "app",
		Classes: []model.ClassSummary{{Name: name}},
	}, nil
}

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.JSONFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func TestRunIsolatesFailures(t *testing.T) {
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = fmt.Sprintf("src/F%02d.java", i)
	}
	ext := &fakeExtractor{failOn: map[string]bool{"src/F04.java": true}}
	store := index.NewStore()

	o := New(ext, store, testLogger(), Options{Workers: 4})
	report, err := o.Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Processed != 9 {
		t.Errorf("Processed = %d, want 9", report.Processed)
	}
	if report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed)
	}
	if len(report.Failures) != 1 || report.Failures[0].Path != "src/F04.java" {
		t.Fatalf("Failures = %+v, want single entry for src/F04.java", report.Failures)
	}
	if store.Len() != 9 {
		t.Errorf("store has %d records, want 9", store.Len())
	}
	if store.Get("src/F04.java") != nil {
		t.Error("failed file must not be merged into the index")
	}
}

func TestRunRecoversFromPanic(t *testing.T) {
	paths := []string{"src/A.java", "src/B.java", "src/C.java"}
	ext := &fakeExtractor{panics: map[string]bool{"src/B.java": true}}
	store := index.NewStore()

	report, err := New(ext, store, testLogger(), Options{Workers: 2}).Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Processed != 2 || report.Failed != 1 {
		t.Fatalf("report = %+v, want 2 processed, 1 failed", report)
	}
	if !strings.Contains(report.Failures[0].Error, "panic") {
		t.Errorf("failure message %q should mention the panic", report.Failures[0].Error)
	}
}

func TestRunEmptyInput(t *testing.T) {
	o := New(&fakeExtractor{}, index.NewStore(), testLogger(), Options{})
	_, err := o.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for empty path set")
	}
	if lenserr.CodeOf(err) != lenserr.InvalidInput {
		t.Errorf("code = %s, want %s", lenserr.CodeOf(err), lenserr.InvalidInput)
	}
}

func TestRunSoftTimeout(t *testing.T) {
	paths := make([]string, 8)
	for i := range paths {
		paths[i] = fmt.Sprintf("src/S%d.java", i)
	}
	ext := &fakeExtractor{delay: 100 * time.Millisecond}
	store := index.NewStore()

	o := New(ext, store, testLogger(), Options{Workers: 1, Timeout: 250 * time.Millisecond})
	report, err := o.Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.TimedOut {
		t.Fatal("report should be flagged as timed out")
	}
	if report.Processed+report.Failed != len(paths) {
		t.Errorf("processed+failed = %d, want %d", report.Processed+report.Failed, len(paths))
	}
	if report.Failed == 0 {
		t.Error("some pending files should have been counted as failed")
	}
	for _, f := range report.Failures {
		if !strings.Contains(f.Error, string(lenserr.Timeout)) {
			t.Errorf("failure %q should carry the timeout code", f.Error)
		}
	}
}

func TestRunConcurrentMergeConsistency(t *testing.T) {
	paths := make([]string, 40)
	for i := range paths {
		paths[i] = fmt.Sprintf("src/C%02d.java", i)
	}
	store := index.NewStore()
	report, err := New(&fakeExtractor{}, store, testLogger(), Options{Workers: 8}).Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Processed != len(paths) {
		t.Fatalf("Processed = %d, want %d", report.Processed, len(paths))
	}
	snap := store.Snapshot()
	if len(snap) != len(paths) {
		t.Fatalf("snapshot has %d records, want %d", len(snap), len(paths))
	}
	for _, p := range paths {
		if snap[p] == nil {
			t.Errorf("snapshot missing %s", p)
		}
	}
}
