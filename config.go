package linkboard

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a linkboard deployment.
type Config struct {
	Name string // Widget/site name used in the widget document title (default "Linkboard")
	Addr string // Listen address (default ":3000")

	ManifestURL  string // Remote manifest store URL; empty = serve cards from the local store
	DatabasePath string // SQLite path for the local manifest store; empty = remote only

	ManifestCacheTTL time.Duration // 0 = one upstream read per widget request
	FetchTimeout     time.Duration // 0 = no client-side limit on the manifest fetch

	FrameAncestors []string // Origins allowed to embed the widget; empty = any

	AdminPassword string // Empty disables the admin surface
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Linkboard"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
}

// fileConfig is the YAML form of Config. Durations are strings so config
// files can say "30s" or "5m".
type fileConfig struct {
	Name             string   `yaml:"name"`
	Addr             string   `yaml:"addr"`
	ManifestURL      string   `yaml:"manifest_url"`
	DatabasePath     string   `yaml:"database_path"`
	ManifestCacheTTL string   `yaml:"manifest_cache_ttl"`
	FetchTimeout     string   `yaml:"fetch_timeout"`
	FrameAncestors   []string `yaml:"frame_ancestors"`
	AdminPassword    string   `yaml:"admin_password"`
	SessionSecret    string   `yaml:"session_secret"`
	CookieSecure     bool     `yaml:"cookie_secure"`
}

// LoadConfigFile reads a YAML config file into a Config.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("linkboard: read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("linkboard: parse config: %w", err)
	}

	cfg := Config{
		Name:           fc.Name,
		Addr:           fc.Addr,
		ManifestURL:    fc.ManifestURL,
		DatabasePath:   fc.DatabasePath,
		FrameAncestors: fc.FrameAncestors,
		AdminPassword:  fc.AdminPassword,
		SessionSecret:  fc.SessionSecret,
		CookieSecure:   fc.CookieSecure,
	}
	if fc.ManifestCacheTTL != "" {
		d, err := time.ParseDuration(fc.ManifestCacheTTL)
		if err != nil {
			return Config{}, fmt.Errorf("linkboard: parse manifest_cache_ttl: %w", err)
		}
		cfg.ManifestCacheTTL = d
	}
	if fc.FetchTimeout != "" {
		d, err := time.ParseDuration(fc.FetchTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("linkboard: parse fetch_timeout: %w", err)
		}
		cfg.FetchTimeout = d
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the structured logger used for fetch and startup
// diagnostics. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}
