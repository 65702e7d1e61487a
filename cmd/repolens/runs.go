package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"repolens/internal/runs"
)

var (
	runsLimit int
	runsJSON  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent indexing runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs to show")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	repoRoot := resolveRepoRoot()
	cfg := loadConfigOrExit(repoRoot)
	logger := newLogger(cfg)

	store, err := runs.OpenStore(stateDir(repoRoot), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := store.List(runsLimit)
	if err != nil {
		return err
	}

	if runsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	if len(history) == 0 {
		fmt.Println("No runs recorded yet. Run 'repolens index' first.")
		return nil
	}
	for _, run := range history {
		status := "ok"
		if run.TimedOut {
			status = "timed out"
		} else if run.Failed > 0 {
			status = fmt.Sprintf("%d failed", run.Failed)
		}
		fmt.Printf("%s  %s  %d files  %s  %s\n",
			run.StartedAt.Local().Format(time.RFC3339),
			run.ID[:8],
			run.Processed,
			run.Duration.Round(time.Millisecond),
			status)
	}
	return nil
}
