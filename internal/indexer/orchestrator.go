package indexer

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	lenserr "repolens/internal/errors"
	"repolens/internal/extract"
	"repolens/internal/index"
	"repolens/internal/logging"
	"repolens/internal/model"
)

// FileFailure records a single file that could not be indexed.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report summarizes one indexing pass over a set of files.
type Report struct {
	Processed int           `json:"processed"`
	Failed    int           `json:"failed"`
	Failures  []FileFailure `json:"failures,omitempty"`
	Duration  time.Duration `json:"duration"`
	TimedOut  bool          `json:"timedOut"`
}

// Options controls indexing concurrency and the soft deadline.
type Options struct {
	// Workers is the extraction pool size. Zero means runtime.NumCPU().
	Workers int
	// Timeout is a soft deadline. Files still pending when it fires are
	// counted as failed; in-flight extractions are abandoned, not killed.
	Timeout time.Duration
}

// Orchestrator runs per-file extraction across a worker pool and merges
// the resulting records into the shared index. A failing file never stops
// the pass; it is recorded and the rest proceed.
type Orchestrator struct {
	extractor extract.Extractor
	store     *index.Store
	logger    *logging.Logger
	opts      Options
}

func New(extractor extract.Extractor, store *index.Store, logger *logging.Logger, opts Options) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		store:     store,
		logger:    logger,
		opts:      opts,
	}
}

type extractResult struct {
	path   string
	record *model.SourceFileRecord
	err    error
}

// Run indexes the given files. The returned Report is non-nil whenever the
// pass ran, including passes where every file failed. An empty path set is
// rejected as invalid input.
func (o *Orchestrator) Run(ctx context.Context, paths []string) (*Report, error) {
	if len(paths) == 0 {
		return nil, lenserr.New(lenserr.InvalidInput, "no files to index", nil)
	}

	workers := o.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	start := time.Now()
	o.logger.Info("indexing started", map[string]interface{}{
		"files":   len(paths),
		"workers": workers,
	})

	jobs := make(chan string, len(paths))
	// Buffered to the full path count so workers can always deliver their
	// result, even after the collector has abandoned a timed-out pass.
	results := make(chan extractResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				rec, err := o.extractOne(ctx, path)
				results <- extractResult{path: path, record: rec, err: err}
			}
		}()
	}
	for _, path := range paths {
		jobs <- path
	}
	close(jobs)

	var deadline <-chan time.Time
	if o.opts.Timeout > 0 {
		timer := time.NewTimer(o.opts.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	pending := make(map[string]bool, len(paths))
	for _, path := range paths {
		pending[path] = true
	}

	report := &Report{}
collect:
	for len(pending) > 0 {
		select {
		case res := <-results:
			delete(pending, res.path)
			if res.err != nil {
				report.Failed++
				report.Failures = append(report.Failures, FileFailure{
					Path:  res.path,
					Error: res.err.Error(),
				})
				o.logger.Warn("file extraction failed", map[string]interface{}{
					"path":  res.path,
					"error": res.err.Error(),
				})
				continue
			}
			o.store.Merge(res.path, res.record)
			report.Processed++
		case <-deadline:
			report.TimedOut = true
			for path := range pending {
				report.Failed++
				report.Failures = append(report.Failures, FileFailure{
					Path:  path,
					Error: lenserr.NewPath(lenserr.Timeout, path, "indexing deadline exceeded", nil).Error(),
				})
			}
			o.logger.Warn("indexing deadline exceeded", map[string]interface{}{
				"pending": len(pending),
				"timeout": o.opts.Timeout.String(),
			})
			break collect
		}
	}

	if !report.TimedOut {
		wg.Wait()
	}

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Path < report.Failures[j].Path
	})
	report.Duration = time.Since(start)

	o.logger.Info("indexing finished", map[string]interface{}{
		"processed": report.Processed,
		"failed":    report.Failed,
		"duration":  report.Duration.String(),
	})
	return report, nil
}

// extractOne isolates a single extraction, converting panics into ordinary
// extraction failures so one malformed file cannot take down the pass.
func (o *Orchestrator) extractOne(ctx context.Context, path string) (rec *model.SourceFileRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = lenserr.NewPath(lenserr.ExtractionFailed, path, fmt.Sprintf("extractor panic: %v", r), nil)
		}
	}()
	return o.extractor.Extract(ctx, path)
}
