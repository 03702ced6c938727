// Package ui provides the terminal user interface for splitdash.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/term"

	"github.com/iconidentify/splitdash/cmd/splitdash-tui/internal/config"
	"github.com/iconidentify/splitdash/cmd/splitdash-tui/internal/preview"
	"github.com/iconidentify/splitdash/internal/dashboard"
	"github.com/iconidentify/splitdash/internal/domain"
)

const (
	pageMain    = "main"
	pageConfirm = "confirm"

	viewHome   = "home"
	viewSplit  = "split"
	viewManage = "manage"

	busyNotice = "Requête en cours…"
)

// App is the main TUI application.
type App struct {
	app     *tview.Application
	cfg     *config.Config
	dash    *dashboard.Dashboard
	fetcher *preview.Fetcher
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc

	// width is the terminal width in columns, updated before each draw.
	width atomic.Int64
	// busy is set while a management request is in flight.
	busy atomic.Bool

	// UI components
	root      *tview.Pages
	mainFlex  *tview.Flex
	header    *tview.TextView
	footer    *tview.TextView
	statusBar *tview.TextView
	sidebar   *tview.List
	content   *tview.Pages
	homeView  *tview.TextView
	splitView tview.Primitive
	frameView *tview.TextView
	manage    *managementPanel

	// State, only touched from the UI goroutine
	page     dashboard.Page
	frameSeq uint64
}

// NewApp creates the TUI over backend, persisting the theme in themes.
func NewApp(cfg *config.Config, backend dashboard.Backend, themes dashboard.ThemeStorage, logger *slog.Logger) (*App, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:     tview.NewApplication(),
		cfg:     cfg,
		fetcher: preview.NewFetcher(&http.Client{Timeout: cfg.Timeout}),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		a.width.Store(int64(w))
	}

	a.dash = dashboard.New(backend, themes, dashboard.Config{
		BaseDomain: cfg.BaseDomain,
		Scheme:     cfg.Scheme,
		Breakpoint: cfg.Breakpoint,
		Viewport:   a.viewport,
	}, logger)

	a.setupUI()
	return a, nil
}

// Dashboard returns the dashboard driven by the UI.
func (a *App) Dashboard() *dashboard.Dashboard {
	return a.dash
}

func (a *App) viewport() int {
	return int(a.width.Load())
}

// setupUI initializes all UI components.
func (a *App) setupUI() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	a.footer = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]Enter[white]:Ouvrir [yellow]h[white]:Accueil [yellow]m[white]:Gérer [yellow]b/f[white]:Précédent/Suivant [yellow]o[white]:Navigateur [yellow]t[white]:Thème [yellow]Tab/Esc[white]:Focus [yellow]q[white]:Quitter")

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true)

	a.sidebar = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	a.sidebar.SetBorder(true).SetTitle(" Splits ")

	a.homeView = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.homeView.SetBorder(true)

	a.manage = newManagementPanel(a)

	a.content = tview.NewPages()
	a.content.AddPage(viewHome, a.homeView, true, true)
	a.content.AddPage(viewManage, a.manage.layout, true, false)

	body := tview.NewFlex().
		AddItem(a.sidebar, 32, 0, true).
		AddItem(a.content, 0, 1, false)

	a.mainFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.footer, 1, 0, false)

	a.root = tview.NewPages().AddPage(pageMain, a.mainFlex, true, true)

	a.app.SetInputCapture(a.handleGlobalKeys)
	a.app.SetBeforeDrawFunc(a.trackWidth)
	a.app.SetRoot(a.root, true).SetFocus(a.sidebar)
}

// handleGlobalKeys handles global keyboard shortcuts.
func (a *App) handleGlobalKeys(event *tcell.EventKey) *tcell.EventKey {
	// The confirmation dialog owns the keyboard while shown.
	if front, _ := a.root.GetFrontPage(); front == pageConfirm {
		return event
	}

	// Don't intercept when typing in input fields
	if _, ok := a.app.GetFocus().(*tview.InputField); ok {
		if event.Key() == tcell.KeyEscape {
			a.app.SetFocus(a.sidebar)
			return nil
		}
		return event
	}

	switch event.Key() {
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q', 'Q':
			a.Stop()
			return nil
		case 'h':
			a.navigate(dashboard.PathHome)
			return nil
		case 'm':
			a.navigate(dashboard.PathManage)
			return nil
		case 'b':
			a.render(a.dash.Back())
			return nil
		case 'f':
			a.render(a.dash.Forward())
			return nil
		case 't':
			a.cycleTheme()
			return nil
		case 'o':
			if a.page.Split != nil {
				a.openPanel(a.page.Split.URL)
				return nil
			}
		}
	case tcell.KeyTab:
		if a.app.GetFocus() == a.sidebar {
			a.focusContent()
			return nil
		}
	case tcell.KeyEscape:
		a.app.SetFocus(a.sidebar)
		return nil
	}

	return event
}

// trackWidth records the terminal width and re-renders a split view when a
// resize crosses the breakpoint.
func (a *App) trackWidth(screen tcell.Screen) bool {
	w, _ := screen.Size()
	old := int(a.width.Swap(int64(w)))
	bp := a.cfg.Breakpoint
	if a.page.View == dashboard.ViewSplit && (old < bp) != (w < bp) {
		go a.app.QueueUpdateDraw(func() {
			a.render(a.dash.Current())
		})
	}
	return false
}

// navigate pushes path onto the history and renders it.
func (a *App) navigate(path string) {
	a.render(a.dash.Navigate(path))
}

// dispatch runs a management action off the UI goroutine. Only one action
// is in flight at a time.
func (a *App) dispatch(action dashboard.Action) {
	if !a.busy.CompareAndSwap(false, true) {
		a.setStatus("[yellow]" + busyNotice)
		return
	}
	a.setStatus("[yellow]…")
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, a.cfg.Timeout)
		defer cancel()

		page, err := a.dash.Dispatch(ctx, action)
		a.busy.Store(false)
		a.app.QueueUpdateDraw(func() {
			a.render(page)
			if err != nil {
				a.setStatus(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
			} else {
				a.setStatus("")
			}
		})
	}()
}

func (a *App) cycleTheme() {
	next := domain.Themes[0]
	for i, t := range domain.Themes {
		if t == a.page.Theme {
			next = domain.Themes[(i+1)%len(domain.Themes)]
		}
	}
	page, err := a.dash.SetTheme(next)
	a.render(page)
	if err != nil {
		a.logger.Error("failed to save theme", "theme", next, "error", err)
		a.setStatus(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
	}
}

func (a *App) focusContent() {
	switch a.page.View {
	case dashboard.ViewManagement:
		a.app.SetFocus(a.manage.form)
	case dashboard.ViewSplit:
		if a.splitView != nil {
			a.app.SetFocus(a.splitView)
		}
	default:
		a.app.SetFocus(a.homeView)
	}
}

func (a *App) setStatus(msg string) {
	if msg == "" {
		a.statusBar.SetText(fmt.Sprintf(" %s", a.cfg.APIURL))
		return
	}
	a.statusBar.SetText(fmt.Sprintf(" %s | %s", msg, time.Now().Format("15:04:05")))
}

// Run loads the splits and starts the TUI application.
func (a *App) Run() error {
	go a.start()
	return a.app.Run()
}

func (a *App) start() {
	ctx, cancel := context.WithTimeout(a.ctx, a.cfg.Timeout)
	defer cancel()

	page, err := a.dash.Start(ctx, a.cfg.StartPath)
	a.app.QueueUpdateDraw(func() {
		a.render(page)
		if err != nil {
			a.setStatus(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
		}
	})
}

// Stop stops the TUI application.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
