// Package client fetches the remote card manifest over HTTP.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/eringen/linkboard/manifest"
)

// Manifest documents are small; anything past this is a misconfigured URL.
const maxBodySize = 1 << 20 // 1MB

// Fetcher retrieves the manifest document from a fixed URL. Each Fetch is a
// single GET: no retries, no redirect tuning, no response caching. Failures
// are logged here so callers can degrade to an empty card list without
// losing the diagnostics.
type Fetcher struct {
	url string
	hc  *http.Client
	log zerolog.Logger
}

// New creates a Fetcher for the given manifest URL. A zero timeout means no
// client-side limit; cancellation then comes only from the request context.
func New(url string, timeout time.Duration, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		url: url,
		hc:  &http.Client{Timeout: timeout},
		log: log,
	}
}

// URL returns the configured manifest location.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch performs one GET against the manifest URL and parses the body. The
// request is bound to ctx, so callers can abort it at teardown instead of
// letting a stale response land after they are gone.
func (f *Fetcher) Fetch(ctx context.Context) (manifest.Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("client: build manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.hc.Do(req)
	if err != nil {
		f.log.Error().Err(err).Str("url", f.url).Msg("manifest fetch failed")
		return nil, fmt.Errorf("client: fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Error().Int("status", resp.StatusCode).Str("url", f.url).Msg("manifest fetch returned unexpected status")
		return nil, fmt.Errorf("client: fetch manifest: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		f.log.Error().Err(err).Str("url", f.url).Msg("manifest body read failed")
		return nil, fmt.Errorf("client: read manifest body: %w", err)
	}

	m, err := manifest.Parse(body)
	if err != nil {
		f.log.Error().Err(err).Str("url", f.url).Msg("manifest body malformed")
		return nil, err
	}

	f.log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("pages", len(m)).
		Str("url", f.url).
		Msg("manifest fetched")
	return m, nil
}
