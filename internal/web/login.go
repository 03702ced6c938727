package web

import (
	"fmt"
	"io"

	"github.com/iconidentify/splitdash/internal/domain"
)

// Login page text.
const (
	LoginTitle    = "Connexion"
	LoginKeyLabel = "Clé d'API"
	LoginSubmit   = "Se connecter"
	LoginInvalid  = "Clé d'API invalide."
	LoggedInText  = "Vous êtes connecté."
	LogoutText    = "Se déconnecter"
)

// LoginPage is the dashboard login form.
type LoginPage struct {
	Theme    domain.Theme
	Title    string
	Label    string
	Submit   string
	Return   string
	Error    string
	LoggedIn bool
	Notice   string
	Logout   string
}

// NewLoginPage builds the login form returning to returnPath after login.
func NewLoginPage(theme domain.Theme, returnPath string) LoginPage {
	return LoginPage{
		Theme:  theme,
		Title:  LoginTitle,
		Label:  LoginKeyLabel,
		Submit: LoginSubmit,
		Return: returnPath,
		Notice: LoggedInText,
		Logout: LogoutText,
	}
}

// RenderLogin writes the login page.
func (r *Renderer) RenderLogin(w io.Writer, page LoginPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "login", page); err != nil {
		return fmt.Errorf("render login: %w", err)
	}
	return nil
}
