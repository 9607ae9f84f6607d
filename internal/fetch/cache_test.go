package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountingServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`<html><body><div class="job-description">Engineer role</div></body></html>`))
	}))
}

func newTestFetcher(ttl time.Duration) *CachedFetcher {
	opts := DefaultOptions()
	opts.BrowserEnabled = false
	return NewCachedFetcher(opts, ttl)
}

func TestCachedFetcherReusesFreshResult(t *testing.T) {
	var hits atomic.Int64
	server := newCountingServer(t, &hits)
	defer server.Close()

	fetcher := newTestFetcher(time.Minute)

	first, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, int64(1), hits.Load())
}

func TestCachedFetcherExpiresEntries(t *testing.T) {
	var hits atomic.Int64
	server := newCountingServer(t, &hits)
	defer server.Close()

	fetcher := newTestFetcher(time.Minute)
	current := time.Now()
	fetcher.now = func() time.Time { return current }

	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	result, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, int64(2), hits.Load())
}

func TestCachedFetcherInvalidate(t *testing.T) {
	var hits atomic.Int64
	server := newCountingServer(t, &hits)
	defer server.Close()

	fetcher := newTestFetcher(time.Minute)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	fetcher.Invalidate(server.URL)

	result, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, int64(2), hits.Load())
}
