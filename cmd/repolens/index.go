package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"repolens/internal/extract"
	"repolens/internal/index"
	"repolens/internal/indexer"
	"repolens/internal/logging"
	"repolens/internal/runs"
)

var (
	indexWorkers int
	indexTimeout time.Duration
	indexFresh   bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the structural index of the repository",
	Long: `Scans the repository for source files, extracts classes, members,
imports and call sites from each file concurrently, and persists the merged
index snapshot under .repolens/.

A file that fails to parse is reported and skipped; it never aborts the run.

Examples:
  repolens index                 # index using the configured settings
  repolens index --workers 8     # override the worker pool size
  repolens index --fresh         # ignore the existing snapshot`,
	RunE: runIndexCmd,
}

func init() {
	indexCmd.Flags().IntVar(&indexWorkers, "workers", 0, "Worker pool size (0 = one per CPU)")
	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 0, "Soft indexing deadline (0 = use config)")
	indexCmd.Flags().BoolVar(&indexFresh, "fresh", false, "Start from an empty index instead of the persisted snapshot")
	rootCmd.AddCommand(indexCmd)
}

func runIndexCmd(cmd *cobra.Command, args []string) error {
	repoRoot := resolveRepoRoot()
	cfg := loadConfigOrExit(repoRoot)
	logger := newLogger(cfg)

	paths, err := indexer.ScanDir(repoRoot, cfg.Indexing.IncludeGlobs, cfg.Indexing.IgnoreDirs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "No source files matched the include patterns.")
		os.Exit(1)
	}

	snapshotPath := filepath.Join(repoRoot, cfg.Snapshot.Path)
	store := index.NewStore()
	if !indexFresh {
		store.LoadFrom(snapshotPath, logger)
	}

	workers := cfg.Indexing.Workers
	if indexWorkers > 0 {
		workers = indexWorkers
	}
	timeout := time.Duration(cfg.Indexing.TimeoutMs) * time.Millisecond
	if indexTimeout > 0 {
		timeout = indexTimeout
	}

	orchestrator := indexer.New(extract.NewJavaExtractor(), store, logger, indexer.Options{
		Workers: workers,
		Timeout: timeout,
	})

	startedAt := time.Now()
	report, err := orchestrator.Run(context.Background(), paths)
	if err != nil {
		return err
	}

	if err := store.Persist(snapshotPath); err != nil {
		return err
	}

	recordRun(repoRoot, startedAt, report, logger)

	fmt.Printf("Indexed %d files (%d failed) in %s\n",
		report.Processed, report.Failed, report.Duration.Round(time.Millisecond))
	for _, failure := range report.Failures {
		fmt.Printf("  failed: %s: %s\n", failure.Path, failure.Error)
	}
	fmt.Printf("Snapshot written to %s\n", snapshotPath)
	return nil
}

// recordRun appends the pass to run history. History is best-effort; a
// storage problem does not fail the indexing run itself.
func recordRun(repoRoot string, startedAt time.Time, report *indexer.Report, logger *logging.Logger) {
	store, err := runs.OpenStore(stateDir(repoRoot), logger)
	if err != nil {
		logger.Warn("run history unavailable", map[string]interface{}{"error": err.Error()})
		return
	}
	defer store.Close()
	if _, err := store.Record(repoRoot, startedAt, report); err != nil {
		logger.Warn("failed to record run", map[string]interface{}{"error": err.Error()})
	}
}
