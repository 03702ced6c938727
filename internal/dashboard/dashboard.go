package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iconidentify/splitdash/internal/domain"
)

// DefaultBreakpoint is the viewport width from which splits are embedded.
const DefaultBreakpoint = 769

// Config controls how splits are addressed and displayed.
type Config struct {
	// BaseDomain is appended to a split name to form its subdomain.
	BaseDomain string
	// Scheme of split panel URLs, http by default.
	Scheme string
	// Breakpoint is the smallest viewport width that embeds a split.
	Breakpoint int
	// Viewport reports the current viewport width. Nil means wide.
	Viewport func() int
}

func (c Config) withDefaults() Config {
	if c.Scheme == "" {
		c.Scheme = "http"
	}
	if c.BaseDomain == "" {
		c.BaseDomain = "localhost"
	}
	if c.Breakpoint <= 0 {
		c.Breakpoint = DefaultBreakpoint
	}
	return c
}

// PanelURL returns the address of the split called name.
func (c Config) PanelURL(name string) string {
	c = c.withDefaults()
	return fmt.Sprintf("%s://%s.%s", c.Scheme, name, c.BaseDomain)
}

// Dashboard ties the store, history, management form and theme together.
// Every transition goes through the same evaluation, which builds a Page.
type Dashboard struct {
	cfg     Config
	store   *Store
	history *History
	mgmt    *Management
	theme   *ThemeController
	logger  *slog.Logger

	mu       sync.Mutex
	frameSeq uint64
}

// New creates a dashboard over backend. Call Start before rendering.
func New(backend Backend, themes ThemeStorage, cfg Config, logger *slog.Logger) *Dashboard {
	store := NewStore(backend)
	return &Dashboard{
		cfg:     cfg.withDefaults(),
		store:   store,
		history: NewHistory(PathHome),
		mgmt:    NewManagement(store),
		theme:   NewThemeController(themes, logger),
		logger:  logger,
	}
}

// Store returns the split store.
func (d *Dashboard) Store() *Store { return d.store }

// History returns the navigation history.
func (d *Dashboard) History() *History { return d.history }

// Management returns the management controller.
func (d *Dashboard) Management() *Management { return d.mgmt }

// Start loads the splits once and evaluates path. A load failure is
// rendered as a degraded page and also returned; navigation keeps working.
func (d *Dashboard) Start(ctx context.Context, path string) (Page, error) {
	loadErr := d.store.Load(ctx)
	if loadErr != nil {
		d.logger.Error("failed to load splits", "error", loadErr)
	} else {
		d.logger.Info("loaded splits", "count", d.store.Len())
	}

	d.history.Replace(path)
	return d.Evaluate(), loadErr
}

// Navigate pushes path and evaluates it.
func (d *Dashboard) Navigate(path string) Page {
	d.history.Push(path)
	return d.Evaluate()
}

// Back moves one entry back and evaluates.
func (d *Dashboard) Back() Page {
	d.history.Back()
	return d.Evaluate()
}

// Forward moves one entry forward and evaluates.
func (d *Dashboard) Forward() Page {
	d.history.Forward()
	return d.Evaluate()
}

// Evaluate renders the current history entry as a fresh entry into its view.
func (d *Dashboard) Evaluate() Page {
	return d.render(true)
}

// Current re-renders the current entry without resetting view state.
func (d *Dashboard) Current() Page {
	return d.render(false)
}

// Dispatch applies a management action and re-renders.
func (d *Dashboard) Dispatch(ctx context.Context, a Action) (Page, error) {
	err := d.mgmt.Dispatch(ctx, a)
	if err != nil {
		d.logger.Warn("management action failed", "action", a.Kind, "split_id", a.ID, "error", err)
	}
	return d.render(false), err
}

// SetTheme persists theme and re-renders.
func (d *Dashboard) SetTheme(theme domain.Theme) (Page, error) {
	if _, err := d.theme.Apply(theme); err != nil {
		return d.render(false), err
	}
	return d.render(false), nil
}

func (d *Dashboard) render(entry bool) Page {
	path := d.history.Current()
	route := ParseRoute(path)
	redirected := false

	var split domain.Split
	if route.Kind == RouteSplit {
		sp, ok := d.store.Find(route.Name)
		if !ok {
			d.logger.Debug("unknown split, redirecting home", "name", route.Name)
			d.history.Replace(PathHome)
			path = PathHome
			route = ParseRoute(path)
			redirected = true
		}
		split = sp
	}

	theme := d.theme.Current()
	page := Page{
		Path:         path,
		Redirected:   redirected,
		Theme:        theme,
		ThemeOptions: ThemeOptions(theme),
		Sidebar:      d.sidebar(route),
	}

	switch route.Kind {
	case RouteSplit:
		page.View = ViewSplit
		page.Title = split.Label
		page.Split = d.splitView(split, entry)
	case RouteManage:
		if entry {
			d.mgmt.Reset()
		}
		page.View = ViewManagement
		page.Title = TitleManagement
		page.Management = d.mgmt.View()
	default:
		page.View = ViewHome
		page.Title = TitleHome
		page.Home = d.homeView()
	}
	return page
}

func (d *Dashboard) sidebar(route Route) Sidebar {
	sb := Sidebar{
		Loaded:       d.store.Loaded(),
		ManagePath:   PathManage,
		ManageText:   ManageLinkText,
		ManageActive: route.Kind == RouteManage,
	}
	if d.store.LoadErr() != nil {
		sb.Error = SidebarLoadError
		return sb
	}

	activeSet := false
	for _, sp := range d.store.Splits() {
		active := !activeSet && route.Kind == RouteSplit && sp.Name == route.Name
		if active {
			activeSet = true
		}
		sb.Items = append(sb.Items, SidebarItem{
			ID:     sp.ID,
			Name:   sp.Name,
			Label:  sp.Label,
			Path:   SplitPath(sp.Name),
			Active: active,
		})
	}
	return sb
}

func (d *Dashboard) homeView() *HomeView {
	if d.store.LoadErr() != nil {
		return &HomeView{Heading: HomeErrorHeading, Failed: true}
	}
	return &HomeView{Heading: HomeHeading, Hint: HomeHint}
}

func (d *Dashboard) splitView(sp domain.Split, entry bool) *SplitView {
	d.mu.Lock()
	if entry || d.frameSeq == 0 {
		d.frameSeq++
	}
	seq := d.frameSeq
	d.mu.Unlock()

	variant := VariantFrame
	if d.cfg.Viewport != nil && d.cfg.Viewport() < d.cfg.Breakpoint {
		variant = VariantCard
	}

	return &SplitView{
		Variant:    variant,
		ID:         sp.ID,
		Name:       sp.Name,
		Label:      sp.Label,
		URL:        d.cfg.PanelURL(sp.Name),
		FrameSeq:   seq,
		FrameTitle: FrameTitle,
		LinkText:   OpenPanel,
	}
}
