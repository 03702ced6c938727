package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/splitdash/internal/api/handler"
	mw "github.com/iconidentify/splitdash/internal/api/middleware"
	"github.com/iconidentify/splitdash/internal/proxy"
	"github.com/iconidentify/splitdash/internal/web"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Split     *handler.SplitHandler
	Health    *handler.HealthHandler
	Dashboard *handler.DashboardHandler
	Proxy     *proxy.Proxy
}

// NewRouter creates the HTTP router with all routes configured.
// A nil keyChecker leaves the mutating API endpoints open and a nil sessions
// leaves the management view open.
func NewRouter(h Handlers, keyChecker mw.KeyChecker, sessions *mw.Sessions, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))

	// Split subdomains bypass every dashboard route.
	if h.Proxy != nil {
		r.Use(mw.Subdomain(h.Proxy.SplitName, h.Proxy.ServeSplit))
	}

	r.Use(middleware.CleanPath) // Normalize paths (e.g., //ready -> /ready)

	// Health endpoints (no auth)
	r.Get("/health", h.Health.Live)
	r.Get("/ready", h.Health.Ready)

	// Web dashboard
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Handle("/static/*", web.Static())
		r.Get("/", h.Dashboard.Page)
		r.Get("/split/*", h.Dashboard.Page)
		r.Post("/theme", h.Dashboard.Theme)

		r.Get(mw.LoginPath, h.Dashboard.LoginForm)
		r.Post(mw.LoginPath, h.Dashboard.Login)
		r.Post("/logout", h.Dashboard.Logout)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireSession(sessions))

			r.Get("/manage", h.Dashboard.Page)
			r.Post("/manage", h.Dashboard.Manage)
		})
	})

	// Split API
	r.Route("/api/splits", func(r chi.Router) {
		r.Use(mw.CORS)
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/", h.Split.List)
		r.Get("/{id}", h.Split.Get)

		r.Group(func(r chi.Router) {
			r.Use(mw.APIKeyAuth(keyChecker))

			r.Post("/", h.Split.Create)
			r.Put("/{id}", h.Split.Update)
			r.Delete("/{id}", h.Split.Delete)
		})
	})

	return r
}
