package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iconidentify/splitdash/internal/api"
	"github.com/iconidentify/splitdash/internal/api/handler"
	mw "github.com/iconidentify/splitdash/internal/api/middleware"
	"github.com/iconidentify/splitdash/internal/config"
	"github.com/iconidentify/splitdash/internal/dashboard"
	"github.com/iconidentify/splitdash/internal/proxy"
	"github.com/iconidentify/splitdash/internal/repository"
	"github.com/iconidentify/splitdash/internal/service"
	"github.com/iconidentify/splitdash/internal/web"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	initOnly := flag.Bool("init-db", false, "Create the database schema and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("splitdash %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting splitdash",
		"version", Version,
		"build_time", BuildTime,
		"storage", cfg.Storage.Driver,
		"base_domain", cfg.Server.BaseDomain,
	)

	ctx := context.Background()
	repo, dataDir, closeRepo, err := openRepository(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open repository", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	if *initOnly {
		logger.Info("database schema ready", "driver", cfg.Storage.Driver)
		return
	}

	// Initialize services
	splitSvc := service.NewSplitService(repo, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	dashCfg := dashboard.Config{
		BaseDomain: cfg.Server.BaseDomain,
		Scheme:     cfg.Server.Scheme,
	}

	checker := keyChecker(cfg.Server)
	sessions := mw.NewSessions(checker, mw.DefaultSessionTTL)

	// Initialize handlers
	handlers := api.Handlers{
		Split:     handler.NewSplitHandler(splitSvc, logger),
		Health:    handler.NewHealthHandler(splitSvc, dataDir, Version, logger),
		Dashboard: handler.NewDashboardHandler(service.NewBackend(splitSvc), renderer, dashCfg, sessions, logger),
		Proxy:     proxy.New(splitSvc, cfg.Server.BaseDomain, cfg.Proxy.Timeout, logger),
	}

	router := api.NewRouter(handlers, checker, sessions, logger)
	if !cfg.Server.AuthEnabled() {
		logger.Warn("API key not configured; split API and management view are open")
	}

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// openRepository opens the configured split store. dataDir is the local
// directory holding the database, empty for non-file drivers.
func openRepository(ctx context.Context, cfg config.StorageConfig) (repository.SplitRepository, string, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return repository.NewInMemorySplitRepository(), "", func() {}, nil
	case config.DriverPostgres:
		repo, err := repository.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, "", nil, err
		}
		return repo, "", func() { repo.Close() }, nil
	default:
		repo, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, "", nil, err
		}
		return repo, filepath.Dir(cfg.SQLitePath), func() { repo.Close() }, nil
	}
}

func keyChecker(cfg config.ServerConfig) mw.KeyChecker {
	switch {
	case cfg.APIKeyHash != "":
		return mw.HashedKey(cfg.APIKeyHash)
	case cfg.APIKey != "":
		return mw.PlainKey(cfg.APIKey)
	}
	return nil
}
