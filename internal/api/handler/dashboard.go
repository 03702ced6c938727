package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	mw "github.com/iconidentify/splitdash/internal/api/middleware"
	"github.com/iconidentify/splitdash/internal/dashboard"
	"github.com/iconidentify/splitdash/internal/domain"
	"github.com/iconidentify/splitdash/internal/web"
)

// DashboardHandler serves the web dashboard. Every request is a fresh page
// load: the split list is fetched once and the path is evaluated.
type DashboardHandler struct {
	backend  dashboard.Backend
	renderer *web.Renderer
	cfg      dashboard.Config
	sessions *mw.Sessions
	logger   *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler. cfg.Viewport is
// ignored; the width comes from each request. A nil sessions disables the
// login page.
func NewDashboardHandler(backend dashboard.Backend, renderer *web.Renderer, cfg dashboard.Config, sessions *mw.Sessions, logger *slog.Logger) *DashboardHandler {
	cfg.Viewport = nil
	return &DashboardHandler{
		backend:  backend,
		renderer: renderer,
		cfg:      cfg,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *DashboardHandler) newDashboard(w http.ResponseWriter, r *http.Request) *dashboard.Dashboard {
	cfg := h.cfg
	width := web.ViewportWidth(r)
	cfg.Viewport = func() int { return width }
	return dashboard.New(h.backend, web.NewCookieThemeStorage(w, r), cfg, h.logger)
}

// Page handles GET /, /split/{name} and /manage.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	d := h.newDashboard(w, r)
	page, _ := d.Start(r.Context(), r.URL.Path)

	if page.Redirected {
		http.Redirect(w, r, dashboard.PathHome, http.StatusSeeOther)
		return
	}

	if page.View == dashboard.ViewManagement {
		q := r.URL.Query()
		var action *dashboard.Action
		switch {
		case q.Get("edit") != "":
			action = &dashboard.Action{Kind: dashboard.ActionEdit, ID: domain.SplitID(q.Get("edit"))}
		case q.Get("delete") != "":
			action = &dashboard.Action{Kind: dashboard.ActionDelete, ID: domain.SplitID(q.Get("delete"))}
		}
		if action != nil {
			page, _ = d.Dispatch(r.Context(), *action)
		}
	}

	h.render(w, http.StatusOK, page)
}

// Manage handles POST /manage form actions.
func (h *DashboardHandler) Manage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	action, err := dashboard.ActionFromForm(r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d := h.newDashboard(w, r)
	page, loadErr := d.Start(r.Context(), dashboard.PathManage)
	if loadErr != nil {
		h.render(w, http.StatusServiceUnavailable, page)
		return
	}

	page, err = d.Dispatch(r.Context(), action)
	if err != nil {
		h.render(w, statusForAction(err), page)
		return
	}

	switch action.Kind {
	case dashboard.ActionEdit, dashboard.ActionDelete:
		h.render(w, http.StatusOK, page)
	default:
		http.Redirect(w, r, dashboard.PathManage, http.StatusSeeOther)
	}
}

func statusForAction(err error) int {
	switch {
	case errors.Is(err, domain.ErrSplitNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateSplit):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyLabel),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyURL),
		errors.Is(err, domain.ErrInvalidURL):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

// Theme handles POST /theme.
func (h *DashboardHandler) Theme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	themes := dashboard.NewThemeController(web.NewCookieThemeStorage(w, r), h.logger)
	if _, err := themes.Apply(domain.Theme(r.PostForm.Get("theme"))); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, safeReturnPath(r.PostForm.Get("return")), http.StatusSeeOther)
}

// LoginForm handles GET /login.
func (h *DashboardHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Enabled() {
		http.Redirect(w, r, dashboard.PathManage, http.StatusSeeOther)
		return
	}

	page := h.loginPage(w, r, r.URL.Query().Get("return"))
	page.LoggedIn = h.sessions.Authenticated(r)
	h.renderLogin(w, http.StatusOK, page)
}

// Login handles POST /login.
func (h *DashboardHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	returnPath := r.PostForm.Get("return")

	if err := h.sessions.Login(w, r, r.PostForm.Get("key")); err != nil {
		if !errors.Is(err, mw.ErrInvalidKey) {
			h.logger.Error("failed to start session", "error", err)
			http.Error(w, "Failed to start session", http.StatusInternalServerError)
			return
		}
		h.logger.Warn("dashboard login rejected", "remote_addr", r.RemoteAddr)
		page := h.loginPage(w, r, returnPath)
		page.Error = web.LoginInvalid
		h.renderLogin(w, http.StatusUnauthorized, page)
		return
	}

	http.Redirect(w, r, loginReturnPath(returnPath), http.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *DashboardHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w, r)
	http.Redirect(w, r, dashboard.PathHome, http.StatusSeeOther)
}

func (h *DashboardHandler) loginPage(w http.ResponseWriter, r *http.Request, returnPath string) web.LoginPage {
	theme := dashboard.NewThemeController(web.NewCookieThemeStorage(w, r), h.logger).Current()
	return web.NewLoginPage(theme, loginReturnPath(returnPath))
}

// loginReturnPath defaults to the management view, the only guarded page.
func loginReturnPath(p string) string {
	if p == "" {
		return dashboard.PathManage
	}
	return safeReturnPath(p)
}

// safeReturnPath keeps redirects on this site.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return dashboard.PathHome
	}
	return p
}

func (h *DashboardHandler) render(w http.ResponseWriter, status int, page dashboard.Page) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page); err != nil {
		h.logger.Error("failed to render page", "path", page.Path, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Accept-CH", web.AcceptCH)
	w.Header().Set("Vary", "Sec-CH-Viewport-Width, Viewport-Width, User-Agent, Cookie")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *DashboardHandler) renderLogin(w http.ResponseWriter, status int, page web.LoginPage) {
	var buf bytes.Buffer
	if err := h.renderer.RenderLogin(&buf, page); err != nil {
		h.logger.Error("failed to render login page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
