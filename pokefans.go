// Package pokefans serves the PokéFans community site with Echo: the
// community page (trainer form, submission feed, fan-art gallery) and the
// type effectiveness calculator.
//
// Every full page load creates a page session (see package session) that
// holds the page's transient state; durable data lives in SQLite, scoped to
// the visitor cookie. Views are supplied through ViewFuncs so a site can
// replace any template.
package pokefans

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pokefans/eventloop"
	"github.com/eringen/pokefans/gallery"
	"github.com/eringen/pokefans/pokedex"
	"github.com/eringen/pokefans/session"
	"github.com/eringen/pokefans/storage"
	"github.com/eringen/pokefans/views"
)

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	Community         func(site views.SiteConfig, meta views.PageMeta, snap session.Snapshot, csrf string) templ.Component
	CommunityFragment func(snap session.Snapshot) templ.Component
	TypeCalculator    func(site views.SiteConfig, meta views.PageMeta, calc views.Calculator) templ.Component
	TypeResult        func(v pokedex.Verdict) templ.Component
	NotFound          func(site views.SiteConfig) templ.Component
	ServerError       func(site views.SiteConfig) templ.Component
}

// DefaultViews returns the built-in templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Community:         views.Community,
		CommunityFragment: views.CommunityFragment,
		TypeCalculator:    views.TypeCalculator,
		TypeResult:        views.TypeResult,
		NotFound:          views.NotFound,
		ServerError:       views.ServerError,
	}
}

// App is the central application. It wires together storage, the page
// session cache, handlers, middleware and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	DB     *storage.SQLite
	Pages  *PageCache
	Thumbs *ThumbCache
	Views  ViewFuncs

	submitLimiter *SubmitLimiter
	clock         clock.Clock
	scheduler     eventloop.Scheduler
	catalog       []gallery.Item
	httpClient    *http.Client
	customRoutes  []func(*App)
	staticDir     string
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     v,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.clock == nil {
		a.clock = clock.NewClock()
	}
	if a.scheduler == nil {
		a.scheduler = eventloop.NewClockScheduler(a.clock)
	}
	if a.catalog == nil {
		a.catalog = gallery.DefaultCatalog()
	}
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return a
}

// Setup opens the database and registers middleware and routes. Start calls
// it; tests call it directly and serve a.Echo.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pokefans: SessionSecret is required")
	}

	db, err := storage.NewSQLite(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pokefans: init store: %w", err)
	}
	a.DB = db

	pages, err := NewPageCache(a.Config.PageSessions, a.Echo.Logger)
	if err != nil {
		return fmt.Errorf("pokefans: init page cache: %w", err)
	}
	a.Pages = pages

	thumbs, err := NewThumbCache(a.Config.ThumbCache)
	if err != nil {
		return fmt.Errorf("pokefans: init thumbnail cache: %w", err)
	}
	a.Thumbs = thumbs

	a.submitLimiter = NewSubmitLimiter(a.Config.SubmitLimit, time.Minute, a.clock)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until the server stops.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/community.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/community.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/healthz", handleHealthz)

	e.GET("/", handleRootRedirect)
	e.GET(gallery.PlaceholderSrc, handlePlaceholder)

	community := e.Group("/community", a.requireVisitor)
	community.GET("/", a.handleCommunity)
	community.POST("/:page/events/", a.handleEvent)
	community.GET("/:page/fragment/", a.handleFragment)
	community.GET("/:page/gallery/:index/thumb", a.handleThumb)

	e.GET("/types/", a.handleTypes)
	e.GET("/types/effectiveness/", a.handleEffectiveness)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.submitLimiter != nil {
		a.submitLimiter.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}
