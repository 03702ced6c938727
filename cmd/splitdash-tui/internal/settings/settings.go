// Package settings persists TUI preferences in a YAML file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/iconidentify/splitdash/internal/domain"
)

// Settings is the content of the settings file.
type Settings struct {
	Theme domain.Theme `yaml:"theme,omitempty"`
}

// File is a settings file. It implements dashboard.ThemeStorage.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns the settings file at path. The file is created on the
// first save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the settings. A missing file yields zero settings.
func (f *File) Load() (Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) load() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", f.path, err)
	}
	return s, nil
}

// Save writes the settings, replacing the file atomically.
func (f *File) Save(s Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(s)
}

func (f *File) save(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// LoadTheme returns the saved theme, empty when none was saved.
func (f *File) LoadTheme() (domain.Theme, error) {
	s, err := f.Load()
	if err != nil {
		return "", err
	}
	return s.Theme, nil
}

// SaveTheme updates the theme, keeping the other settings.
func (f *File) SaveTheme(theme domain.Theme) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.load()
	if err != nil {
		s = Settings{}
	}
	s.Theme = theme
	return f.save(s)
}
