package domain

import "strings"

// Theme selects the display palette of the dashboard.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultTheme is used when nothing has been persisted yet.
const DefaultTheme = ThemeSystem

// Themes lists the selectable themes in display order.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSystem}

// String returns the string representation of the Theme.
func (t Theme) String() string {
	return string(t)
}

// ParseTheme validates a persisted or user-supplied theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	}
	return "", ErrInvalidTheme
}
