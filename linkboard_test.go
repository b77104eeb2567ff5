package linkboard

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/eringen/linkboard/manifest"
)

const sampleManifest = `{"": [{"category":"Blog","title":"Post A","url":"/blog/a"}], "notes": []}`

func upstreamWith(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newTestApp wires an App to the given upstream manifest URL without
// binding a listener; requests go straight through Echo's handler.
func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-secret"
	}
	app := New(cfg, DefaultViews())
	require.NoError(t, app.init())
	t.Cleanup(func() { app.Close() })
	return app
}

func getWidget(t *testing.T, app *App, from string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/widget/?from="+from, nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func TestWidgetRendersRootListing(t *testing.T) {
	upstream := upstreamWith(t, sampleManifest)
	app := newTestApp(t, Config{Name: "Test Site", ManifestURL: upstream.URL})

	rec := getWidget(t, app, "https%3A%2F%2Fsite.example%2F")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, `class="card"`), "exactly one card for the root listing")
	assert.Contains(t, body, `<span class="card-category">Blog</span>`)
	assert.Contains(t, body, `<span class="card-title">Post A</span>`)
	assert.Contains(t, body, `href="/blog/a"`)
	assert.Contains(t, body, `target="_parent"`)
	assert.Contains(t, body, `<title>Test Site</title>`)
}

func TestWidgetRendersEmptyForEmptyPage(t *testing.T) {
	upstream := upstreamWith(t, sampleManifest)
	app := newTestApp(t, Config{ManifestURL: upstream.URL})

	rec := getWidget(t, app, "https%3A%2F%2Fsite.example%2Fnotes")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="card"`)
}

func TestWidgetRendersEmptyForUnknownKey(t *testing.T) {
	upstream := upstreamWith(t, sampleManifest)
	app := newTestApp(t, Config{ManifestURL: upstream.URL})

	rec := getWidget(t, app, "https%3A%2F%2Fsite.example%2Fno-such-page")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="card"`)
}

func TestWidgetRendersEmptyWithoutHostURL(t *testing.T) {
	upstream := upstreamWith(t, sampleManifest)
	app := newTestApp(t, Config{ManifestURL: upstream.URL})

	// No from parameter and no Referer: the key cannot be resolved, so the
	// widget shows nothing.
	req := httptest.NewRequest(http.MethodGet, "/widget/", nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="card"`)
}

func TestWidgetDegradesOnFetchFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // refuse connections

	app := newTestApp(t, Config{ManifestURL: upstream.URL})
	rec := getWidget(t, app, "https%3A%2F%2Fsite.example%2F")

	require.Equal(t, http.StatusOK, rec.Code, "fetch failure must not surface to the frame")
	assert.NotContains(t, rec.Body.String(), `class="card"`)
}

func TestWidgetDegradesOnMalformedManifest(t *testing.T) {
	upstream := upstreamWith(t, `{"": [`)
	app := newTestApp(t, Config{ManifestURL: upstream.URL})

	rec := getWidget(t, app, "https%3A%2F%2Fsite.example%2F")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="card"`)
}

func TestWidgetFallsBackToReferer(t *testing.T) {
	upstream := upstreamWith(t, sampleManifest)
	app := newTestApp(t, Config{ManifestURL: upstream.URL})

	req := httptest.NewRequest(http.MethodGet, "/widget/", nil)
	req.Header.Set("Referer", "https://site.example/")
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<span class="card-title">Post A</span>`)
}

func TestEachWidgetRequestFetchesOnce(t *testing.T) {
	fetches := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(sampleManifest))
	}))
	t.Cleanup(upstream.Close)

	app := newTestApp(t, Config{ManifestURL: upstream.URL})
	for i := 0; i < 3; i++ {
		getWidget(t, app, "https%3A%2F%2Fsite.example%2F")
	}
	assert.Equal(t, 3, fetches, "TTL zero means one upstream read per mount")
}

func TestCachedWidgetFetchesOnceWithinTTL(t *testing.T) {
	fetches := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(sampleManifest))
	}))
	t.Cleanup(upstream.Close)

	app := newTestApp(t, Config{ManifestURL: upstream.URL, ManifestCacheTTL: time.Minute})
	for i := 0; i < 3; i++ {
		getWidget(t, app, "https%3A%2F%2Fsite.example%2F")
	}
	assert.Equal(t, 1, fetches)
}

func TestManifestJSONServedFromLocalStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "manifest.db")
	store, err := NewCardStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.ReplacePage("", []manifest.Card{{Category: "Blog", Title: "Post A", URL: "/blog/a"}}))
	require.NoError(t, store.Close())

	app := newTestApp(t, Config{DatabasePath: dbPath})

	req := httptest.NewRequest(http.MethodGet, "/manifest.json", nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"": [{"category":"Blog","title":"Post A","url":"/blog/a"}]}`, rec.Body.String())

	// A local-store-only App serves the widget directly from SQLite.
	wrec := getWidget(t, app, "https%3A%2F%2Fsite.example%2F")
	require.Equal(t, http.StatusOK, wrec.Code)
	assert.Contains(t, wrec.Body.String(), `<span class="card-title">Post A</span>`)
}

func TestInitRequiresASource(t *testing.T) {
	app := New(Config{SessionSecret: "s"}, DefaultViews())
	assert.Error(t, app.init())
}

func TestInitRequiresSessionSecret(t *testing.T) {
	app := New(Config{ManifestURL: "http://127.0.0.1:1/manifest.json"}, DefaultViews())
	assert.Error(t, app.init())
}

func TestAdminShowsLoginWhenUnauthenticated(t *testing.T) {
	upstream := upstreamWith(t, sampleManifest)
	app := newTestApp(t, Config{ManifestURL: upstream.URL, AdminPassword: "hunter2"})

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/admin/login/"`)
}

func TestAdminDisabledWithoutPassword(t *testing.T) {
	upstream := upstreamWith(t, sampleManifest)
	app := newTestApp(t, Config{ManifestURL: upstream.URL})

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	upstream := upstreamWith(t, `{}`)
	app := newTestApp(t, Config{ManifestURL: upstream.URL})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
