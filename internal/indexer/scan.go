package indexer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	lenserr "repolens/internal/errors"
)

// ScanDir walks a repository root and returns the files matching any of the
// include globs (slash-separated, relative to root). Hidden directories and
// the configured ignore directories are skipped.
func ScanDir(root string, includeGlobs []string, ignoreDirs []string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, lenserr.NewPath(lenserr.InvalidInput, root, "repository root not accessible", err)
	}

	matchers := make([]glob.Glob, 0, len(includeGlobs))
	for _, pattern := range includeGlobs {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, lenserr.NewPath(lenserr.InvalidInput, pattern, "invalid include pattern", err)
		}
		matchers = append(matchers, g)
	}

	ignored := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignored[d] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || ignored[name]) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		for _, g := range matchers {
			if g.Match(rel) || g.Match(name) {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, lenserr.NewPath(lenserr.InvalidInput, root, "walk repository", err)
	}
	return paths, nil
}
