// splitdash-tui is a terminal client for the splitdash backend. It shows
// the split list in a sidebar, previews panels inline and manages splits
// through the REST API.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/iconidentify/splitdash/cmd/splitdash-tui/internal/config"
	"github.com/iconidentify/splitdash/cmd/splitdash-tui/internal/settings"
	"github.com/iconidentify/splitdash/cmd/splitdash-tui/internal/ui"
	"github.com/iconidentify/splitdash/pkg/splitclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "splitdash-tui must be run in an interactive terminal")
		os.Exit(1)
	}

	if cfg.PromptKey && cfg.APIKey == "" {
		key, err := promptKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading API key: %v\n", err)
			os.Exit(1)
		}
		cfg.APIKey = key
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	client := splitclient.NewClient(cfg.APIURL, cfg.APIKey).
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout})
	themes := settings.NewFile(cfg.SettingsPath)

	logger.Info("starting splitdash-tui", "api_url", cfg.APIURL, "settings", themes.Path())

	app, err := ui.NewApp(cfg, client, themes, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing TUI: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		logger.Error("tui exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func promptKey() (string, error) {
	fmt.Fprint(os.Stderr, "API key: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// newLogger writes to the configured log file, or nowhere, so log output
// never draws over the interface.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { f.Close() }, nil
}
