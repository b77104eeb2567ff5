// Package linkboard is an embeddable link-card widget service built with Go,
// Echo, and templ. It fetches a JSON card manifest, selects the slice that
// matches the page embedding it, and serves the result as a framed list of
// link cards. It can also host the manifest document itself from SQLite.
//
// Users provide their own templ components via the ViewFuncs struct (or use
// the stock set from the views package), and linkboard handles the fetch,
// key resolution, caching, middleware, and admin surface.
package linkboard

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/linkboard/client"
	"github.com/eringen/linkboard/manifest"
	"github.com/eringen/linkboard/views"
)

// ViewFuncs holds the templ components the service calls when rendering
// pages. This is the inversion-of-control mechanism that lets users own and
// restyle all templates; DefaultViews returns the stock set.
type ViewFuncs struct {
	Widget      func(cards []manifest.Card, siteName string) templ.Component
	AdminLogin  func(showError bool, csrfToken string) templ.Component
	AdminStatus func(st views.Status, csrfToken string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// DefaultViews returns the stock components from the views package. Replace
// individual fields to restyle pages without touching handler logic.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Widget:      views.WidgetPage,
		AdminLogin:  views.AdminLogin,
		AdminStatus: views.AdminStatus,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the central linkboard application. It wires together the fetch
// client, manifest cache, optional local store, handlers, middleware, and
// the user-provided templates.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *CardStore     // nil unless Config.DatabasePath is set
	Cache  *ManifestCache // nil unless Config.ManifestURL is set
	Views  ViewFuncs

	fetcher      *client.Fetcher
	loginLimiter *loginLimiter
	customRoutes []func(*App)
	staticDir    string
	log          zerolog.Logger
}

// New creates a linkboard App with the given configuration and views.
func New(cfg Config, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		log:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, cache, middleware, and routes, then starts
// the HTTP server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init wires everything short of binding the listener. Split out so tests
// can drive the App through Echo's handler without a real socket.
func (a *App) init() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("linkboard: SessionSecret is required")
	}
	if a.Config.ManifestURL == "" && a.Config.DatabasePath == "" {
		return fmt.Errorf("linkboard: either ManifestURL or DatabasePath is required")
	}

	if a.Config.DatabasePath != "" {
		store, err := NewCardStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("linkboard: init store: %w", err)
		}
		a.Store = store
	}

	if a.Config.ManifestURL != "" {
		a.fetcher = client.New(a.Config.ManifestURL, a.Config.FetchTimeout, a.log)
		a.Cache = NewManifestCache(a.fetcher.Fetch, a.Config.ManifestCacheTTL)
	}

	if a.adminEnabled() {
		a.loginLimiter = newLoginLimiter(5, loginWindow)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/widget/", a.handleWidget)
	e.GET("/embed.js", a.handleEmbedJS)
	e.GET("/healthz", a.handleHealthz)
	e.Static("/public", a.staticDir)

	// The local manifest store, when configured, serves the same document
	// shape the widget fetches remotely.
	if a.Store != nil {
		e.GET("/manifest.json", a.handleManifestJSON)
	}

	if a.adminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.POST("/admin/refresh/", a.handleAdminRefresh)
	}
}

func (a *App) adminEnabled() bool {
	return a.Config.AdminPassword != ""
}

// Manifest returns the current manifest: through the cache when a remote
// manifest URL is configured, otherwise directly from the local store.
func (a *App) Manifest(c echo.Context) (manifest.Manifest, error) {
	if a.Cache != nil {
		return a.Cache.Get(c.Request().Context())
	}
	return a.Store.Manifest()
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("linkboard: required environment variable %s is not set", key)
	}
	return v
}
