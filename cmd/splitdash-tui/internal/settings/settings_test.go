package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iconidentify/splitdash/internal/domain"
)

func TestFile_MissingFile(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope", "settings.yaml"))

	theme, err := f.LoadTheme()
	if err != nil || theme != "" {
		t.Errorf("LoadTheme() = %q, %v; want empty", theme, err)
	}
}

func TestFile_SaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splitdash", "settings.yaml")

	if err := NewFile(path).SaveTheme(domain.ThemeDark); err != nil {
		t.Fatalf("SaveTheme() error = %v", err)
	}

	theme, err := NewFile(path).LoadTheme()
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	if theme != domain.ThemeDark {
		t.Errorf("theme = %q, want dark", theme)
	}

	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "theme: dark" {
		t.Errorf("file = %q", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	f := NewFile(path)

	if _, err := f.LoadTheme(); err == nil {
		t.Error("LoadTheme() accepted invalid YAML")
	}
	if err := f.SaveTheme(domain.ThemeLight); err != nil {
		t.Fatalf("SaveTheme() over corrupt file error = %v", err)
	}
	if theme, _ := f.LoadTheme(); theme != domain.ThemeLight {
		t.Errorf("theme = %q", theme)
	}
}
