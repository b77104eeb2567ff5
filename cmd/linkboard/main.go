package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/eringen/linkboard"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "import":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: linkboard import <manifest-file>")
			os.Exit(1)
		}
		if err := runImport(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("linkboard %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger()
	app := linkboard.New(cfg, linkboard.DefaultViews(), linkboard.WithLogger(log))
	defer app.Close()

	log.Info().Str("addr", cfg.Addr).Str("manifest_url", cfg.ManifestURL).Msg("starting linkboard")
	return app.Start()
}

// loadConfig builds the runtime config: an optional YAML file named by
// LINKBOARD_CONFIG, with environment variables taking precedence.
func loadConfig() (linkboard.Config, error) {
	var cfg linkboard.Config
	if path := os.Getenv("LINKBOARD_CONFIG"); path != "" {
		c, err := linkboard.LoadConfigFile(path)
		if err != nil {
			return linkboard.Config{}, err
		}
		cfg = c
	}

	cfg.Name = linkboard.EnvOr("LINKBOARD_NAME", cfg.Name)
	cfg.Addr = linkboard.EnvOr("LINKBOARD_ADDR", cfg.Addr)
	cfg.ManifestURL = linkboard.EnvOr("LINKBOARD_MANIFEST_URL", cfg.ManifestURL)
	cfg.DatabasePath = linkboard.EnvOr("LINKBOARD_DB_PATH", cfg.DatabasePath)
	cfg.AdminPassword = linkboard.EnvOr("LINKBOARD_ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.SessionSecret = linkboard.EnvOr("LINKBOARD_SESSION_SECRET", cfg.SessionSecret)

	if v := os.Getenv("LINKBOARD_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return linkboard.Config{}, fmt.Errorf("invalid LINKBOARD_CACHE_TTL: %w", err)
		}
		cfg.ManifestCacheTTL = d
	}
	if v := os.Getenv("LINKBOARD_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return linkboard.Config{}, fmt.Errorf("invalid LINKBOARD_FETCH_TIMEOUT: %w", err)
		}
		cfg.FetchTimeout = d
	}
	if v := os.Getenv("LINKBOARD_FRAME_ANCESTORS"); v != "" {
		cfg.FrameAncestors = splitAndTrim(v)
	}
	if v := os.Getenv("LINKBOARD_COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return linkboard.Config{}, fmt.Errorf("invalid LINKBOARD_COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	return cfg, nil
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(linkboard.EnvOr("LINKBOARD_LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printUsage() {
	fmt.Println(`linkboard - an embeddable link-card widget service

Usage:
  linkboard <command> [arguments]

Commands:
  serve             Start the widget server (default)
  import <file>     Load a YAML or JSON manifest into the local store
  version           Print the linkboard version
  help              Show this help message

Configuration is read from LINKBOARD_* environment variables, optionally
layered over a YAML file named by LINKBOARD_CONFIG.`)
}
