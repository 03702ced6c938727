package web

import (
	"net/http"
	"time"

	"github.com/iconidentify/splitdash/internal/domain"
)

// ThemeCookie is the cookie holding the selected theme.
const ThemeCookie = "dashboard-theme"

// CookieThemeStorage persists the theme in a browser cookie.
type CookieThemeStorage struct {
	r     *http.Request
	w     http.ResponseWriter
	saved domain.Theme
}

// NewCookieThemeStorage stores the theme for the client of r.
func NewCookieThemeStorage(w http.ResponseWriter, r *http.Request) *CookieThemeStorage {
	return &CookieThemeStorage{r: r, w: w}
}

// LoadTheme returns the theme saved during this request, else the cookie value.
func (s *CookieThemeStorage) LoadTheme() (domain.Theme, error) {
	if s.saved != "" {
		return s.saved, nil
	}
	c, err := s.r.Cookie(ThemeCookie)
	if err != nil {
		return "", nil
	}
	return domain.Theme(c.Value), nil
}

// SaveTheme sets the theme cookie on the response.
func (s *CookieThemeStorage) SaveTheme(theme domain.Theme) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    theme.String(),
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.saved = theme
	return nil
}
