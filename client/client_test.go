package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/linkboard/manifest"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"": [{"category":"Blog","title":"Post A","url":"/blog/a"}], "notes": []}`))
	}))
	defer srv.Close()

	f := New(srv.URL, time.Second, zerolog.Nop())
	m, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, []manifest.Card{{Category: "Blog", Title: "Post A", URL: "/blog/a"}}, m[""])
}

func TestFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := New(srv.URL, time.Second, zerolog.Nop())
	_, err := f.Fetch(context.Background())
	assert.ErrorContains(t, err, "unexpected status 503")
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"": [`))
	}))
	defer srv.Close()

	f := New(srv.URL, time.Second, zerolog.Nop())
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	f := New(srv.URL, time.Second, zerolog.Nop())
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	f := New(srv.URL, 0, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := f.Fetch(ctx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not return after context cancellation")
	}
}
