package dashboard

import (
	"errors"
	"testing"

	"github.com/iconidentify/splitdash/internal/domain"
)

type failingThemeStorage struct{}

func (failingThemeStorage) LoadTheme() (domain.Theme, error) { return "", errors.New("disk gone") }
func (failingThemeStorage) SaveTheme(domain.Theme) error     { return errors.New("disk gone") }

func TestThemeController_PersistsAcrossControllers(t *testing.T) {
	storage := &MemoryThemeStorage{}

	first := NewThemeController(storage, testLogger())
	if _, err := first.Apply(domain.ThemeDark); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	second := NewThemeController(storage, testLogger())
	if got := second.Current(); got != domain.ThemeDark {
		t.Errorf("Current() = %q, want dark", got)
	}
}

func TestThemeController_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		storage ThemeStorage
	}{
		{"empty", &MemoryThemeStorage{}},
		{"garbage", &MemoryThemeStorage{theme: "neon"}},
		{"unreadable", failingThemeStorage{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewThemeController(tt.storage, testLogger())
			if got := c.Current(); got != domain.DefaultTheme {
				t.Errorf("Current() = %q, want %q", got, domain.DefaultTheme)
			}
		})
	}
}

func TestThemeController_ApplyRejects(t *testing.T) {
	storage := &MemoryThemeStorage{}
	c := NewThemeController(storage, testLogger())

	if _, err := c.Apply("sepia"); !errors.Is(err, domain.ErrInvalidTheme) {
		t.Errorf("Apply(sepia) error = %v", err)
	}
	if storage.theme != "" {
		t.Errorf("invalid theme persisted: %q", storage.theme)
	}

	if _, err := NewThemeController(failingThemeStorage{}, testLogger()).Apply(domain.ThemeLight); err == nil {
		t.Error("Apply() with failing storage succeeded")
	}
}

func TestThemeOptions(t *testing.T) {
	opts := ThemeOptions(domain.ThemeLight)
	if len(opts) != len(domain.Themes) {
		t.Fatalf("len = %d", len(opts))
	}
	if !opts[0].Selected || opts[0].Text != ThemeLightText {
		t.Errorf("opts[0] = %+v", opts[0])
	}
}
