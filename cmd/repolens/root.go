package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"repolens/internal/config"
	"repolens/internal/logging"
	"repolens/internal/version"
)

var (
	// repoFlag overrides the repository root (default: current directory)
	repoFlag string
	// logFormatFlag selects human or json log output
	logFormatFlag string
	// logLevelFlag selects the minimum log level
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "RepoLens - repository structure and relationship explorer",
	Long: `RepoLens builds a structural index of a source repository (classes,
members, imports, call sites), infers typed relationships between classes and
renders class, component, package and sequence diagrams from it.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("RepoLens version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Repository root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: human or json")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

// stateDirName holds config, snapshot and run history under the repo root.
const stateDirName = ".repolens"

func resolveRepoRoot() string {
	if repoFlag != "" {
		abs, err := filepath.Abs(repoFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid repo path: %v\n", err)
			os.Exit(1)
		}
		return abs
	}
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cwd
}

func stateDir(repoRoot string) string {
	return filepath.Join(repoRoot, stateDirName)
}

// newLogger builds the command logger. CLI flags win over the config file.
func newLogger(cfg *config.Config) *logging.Logger {
	format := logging.Format(cfg.Logging.Format)
	if logFormatFlag != "" {
		format = logging.Format(logFormatFlag)
	}
	if format != logging.JSONFormat {
		format = logging.HumanFormat
	}

	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  logging.ParseLevel(level),
	})
}

func loadConfigOrExit(repoRoot string) *config.Config {
	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
