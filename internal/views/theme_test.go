package views

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	lenserr "repolens/internal/errors"
)

func TestLoadThemeEmptyPath(t *testing.T) {
	theme, err := LoadTheme("")
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if theme != DefaultTheme() {
		t.Error("empty path should return the default theme")
	}
}

func TestLoadThemeOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("background: \"#000000\"\ncallEdge: \"#FF0000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if theme.Background != "#000000" || theme.CallEdge != "#FF0000" {
		t.Errorf("overrides not applied: %+v", theme)
	}
	if theme.ClassFill != DefaultTheme().ClassFill {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadThemeFailuresAreNonFatal(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(bad, []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(t.TempDir(), "missing.yaml"), bad} {
		theme, err := LoadTheme(path)
		if err == nil {
			t.Fatalf("expected error for %s", path)
		}
		if lenserr.CodeOf(err) != lenserr.ThemeLoadFailed {
			t.Errorf("code = %s, want %s", lenserr.CodeOf(err), lenserr.ThemeLoadFailed)
		}
		var le *lenserr.LensError
		if errors.As(err, &le) && le.Fatal() {
			t.Error("theme load failures must not be fatal")
		}
		if theme != DefaultTheme() {
			t.Error("failed load should fall back to the default theme")
		}
	}
}
