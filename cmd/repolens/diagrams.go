package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"repolens/internal/classify"
	"repolens/internal/index"
	"repolens/internal/render"
	"repolens/internal/views"
)

var diagramsOutputDir string

var diagramsCmd = &cobra.Command{
	Use:   "diagrams",
	Short: "Render diagram views from the persisted index",
	Long: `Loads the index snapshot, classifies relationships between classes
and renders the class, component, package and sequence views as Graphviz DOT
files. A view that fails to render is reported and the remaining views are
still attempted.`,
	RunE: runDiagrams,
}

func init() {
	diagramsCmd.Flags().StringVarP(&diagramsOutputDir, "output", "o", "", "Output directory (default: configured views.outputDir)")
	rootCmd.AddCommand(diagramsCmd)
}

func runDiagrams(cmd *cobra.Command, args []string) error {
	repoRoot := resolveRepoRoot()
	cfg := loadConfigOrExit(repoRoot)
	logger := newLogger(cfg)

	snapshotPath := filepath.Join(repoRoot, cfg.Snapshot.Path)
	snap, err := index.ReadSnapshot(snapshotPath, logger)
	if err != nil {
		logger.Warn("snapshot unreadable, proceeding with empty index", map[string]interface{}{
			"path":  snapshotPath,
			"error": err.Error(),
		})
	}

	theme, err := views.LoadTheme(cfg.Views.ThemePath)
	if err != nil {
		logger.Warn("falling back to default theme", map[string]interface{}{
			"error": err.Error(),
		})
	}

	outputDir := cfg.Views.OutputDir
	if diagramsOutputDir != "" {
		outputDir = diagramsOutputDir
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(repoRoot, outputDir)
	}

	classifier := classify.New(cfg.Classifier, logger)
	builder := views.NewBuilder(cfg.Views, theme, classifier, logger)
	assembler := views.NewAssembler(builder, classifier, render.NewDOT(), logger, outputDir)

	results := assembler.RenderAll(snap)

	var failed int
	for _, result := range results {
		switch {
		case result.Error != "":
			failed++
			fmt.Fprintf(os.Stderr, "  %s: %s\n", result.Name, result.Error)
		case result.Skipped:
			fmt.Printf("  %s: skipped (no content)\n", result.Name)
		default:
			fmt.Printf("  %s: %s\n", result.Name, result.Output)
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d views failed to render\n", failed, len(results))
	}
	return nil
}
