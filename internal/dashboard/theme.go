package dashboard

import (
	"log/slog"
	"sync"

	"github.com/iconidentify/splitdash/internal/domain"
)

// ThemeStorage is the durable local store for the selected theme.
// LoadTheme returns an empty theme when nothing has been saved.
type ThemeStorage interface {
	LoadTheme() (domain.Theme, error)
	SaveTheme(theme domain.Theme) error
}

// ThemeController applies and persists the display theme.
type ThemeController struct {
	storage ThemeStorage
	logger  *slog.Logger
}

// NewThemeController creates a controller over storage.
func NewThemeController(storage ThemeStorage, logger *slog.Logger) *ThemeController {
	return &ThemeController{storage: storage, logger: logger}
}

// Current reads the persisted theme. Missing or unreadable values fall back
// to the default.
func (c *ThemeController) Current() domain.Theme {
	raw, err := c.storage.LoadTheme()
	if err != nil {
		c.logger.Warn("load theme failed", "error", err)
		return domain.DefaultTheme
	}
	if raw == "" {
		return domain.DefaultTheme
	}
	theme, err := domain.ParseTheme(raw.String())
	if err != nil {
		c.logger.Warn("ignoring persisted theme", "theme", raw, "error", err)
		return domain.DefaultTheme
	}
	return theme
}

// Apply validates and persists theme.
func (c *ThemeController) Apply(theme domain.Theme) (domain.Theme, error) {
	parsed, err := domain.ParseTheme(theme.String())
	if err != nil {
		return "", err
	}
	if err := c.storage.SaveTheme(parsed); err != nil {
		return "", err
	}
	return parsed, nil
}

// ThemeOption is one entry of the theme selector.
type ThemeOption struct {
	Value    domain.Theme
	Text     string
	Selected bool
}

// ThemeOptions lists every theme with current selected.
func ThemeOptions(current domain.Theme) []ThemeOption {
	opts := make([]ThemeOption, 0, len(domain.Themes))
	for _, t := range domain.Themes {
		opts = append(opts, ThemeOption{
			Value:    t,
			Text:     themeText(t),
			Selected: t == current,
		})
	}
	return opts
}

func themeText(t domain.Theme) string {
	switch t {
	case domain.ThemeLight:
		return ThemeLightText
	case domain.ThemeDark:
		return ThemeDarkText
	default:
		return ThemeSystemText
	}
}

// MemoryThemeStorage keeps the theme in memory.
type MemoryThemeStorage struct {
	mu    sync.Mutex
	theme domain.Theme
}

// LoadTheme implements ThemeStorage.
func (s *MemoryThemeStorage) LoadTheme() (domain.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, nil
}

// SaveTheme implements ThemeStorage.
func (s *MemoryThemeStorage) SaveTheme(theme domain.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}
