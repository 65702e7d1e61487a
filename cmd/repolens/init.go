package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"repolens/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize RepoLens configuration",
	Long:  "Creates a .repolens/ directory with default configuration in the repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .repolens directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	repoRoot := resolveRepoRoot()
	dir := stateDir(repoRoot)

	if _, statErr := os.Stat(dir); statErr == nil {
		if !initForce {
			// Idempotent: already initialized is success
			fmt.Println("RepoLens already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(dir, "config.json"))
			fmt.Println("\nRun 'repolens init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			return fmt.Errorf("failed to remove existing %s directory: %w", stateDirName, removeErr)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", stateDirName, err)
	}

	cfg := config.DefaultConfig()
	cfg.RepoRoot = "."
	if err := cfg.Save(repoRoot); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Println("RepoLens initialized.")
	fmt.Printf("Configuration at: %s\n", filepath.Join(dir, "config.json"))
	fmt.Println("\nNext steps:")
	fmt.Println("  repolens index       # build the structural index")
	fmt.Println("  repolens diagrams    # render diagram views")
	return nil
}
