package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/docs/guides/intro.md", r.URL.Path)
		_, _ = w.Write([]byte("# Intro\n"))
	}))
	defer server.Close()
	fetcher := New(server.URL + "/docs/")

	content, err := fetcher.Fetch(context.Background(), "guides/intro.md")

	require.NoError(t, err)
	assert.Equal(t, "# Intro\n", content)
}

func TestFetcher_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()
	fetcher := New(server.URL)

	_, err := fetcher.Fetch(context.Background(), "missing.md")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_Fetch_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()
	fetcher := New(server.URL)

	_, err := fetcher.Fetch(context.Background(), "doc.md")

	assert.Error(t, err)
}

func TestFetcher_Fetch_CancelledContext(t *testing.T) {
	fetcher := New("http://example.invalid", WithRateLimit(0.001, 1))
	ctx, cancel := context.WithCancel(context.Background())

	// Exhaust the burst, then cancel while the limiter would block.
	_, _ = fetcher.Fetch(ctx, "one.md")
	cancel()
	_, err := fetcher.Fetch(ctx, "two.md")

	assert.Error(t, err)
}
