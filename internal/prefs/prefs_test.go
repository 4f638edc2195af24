package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaultTheme(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if got.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", got.Theme, defaultTheme)
	}
}

func TestLoad_MalformedFileUsesDefaultTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [broken"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := Load(path)
	if got.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q on malformed prefs", got.Theme, defaultTheme)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	if err := Save(path, Prefs{Theme: "Nord"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got := Load(path)
	if got.Theme != "Nord" {
		t.Fatalf("Theme = %q, want Nord", got.Theme)
	}
}
