package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched page stays fresh. Job postings
// rarely change within a batch run, so an hour is generous.
const DefaultCacheTTL = time.Hour

// CachedFetcher wraps JobPage with an in-memory TTL cache so batch runs
// against the same posting fetch it once. Safe for concurrent use.
type CachedFetcher struct {
	opts *Options
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry

	// now is swappable for tests.
	now func() time.Time
}

type cacheEntry struct {
	result    *Result
	fetchedAt time.Time
}

// CachedResult extends Result with cache provenance.
type CachedResult struct {
	*Result
	FromCache bool
}

// NewCachedFetcher creates a caching fetcher. A zero ttl selects
// DefaultCacheTTL; nil opts selects DefaultOptions.
func NewCachedFetcher(opts *Options, ttl time.Duration) *CachedFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		opts:    opts,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Fetch returns the cached page when fresh, otherwise fetches and caches.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	f.mu.RLock()
	entry, ok := f.entries[urlStr]
	f.mu.RUnlock()
	if ok && f.now().Sub(entry.fetchedAt) < f.ttl {
		return &CachedResult{Result: entry.result, FromCache: true}, nil
	}

	result, err := JobPage(ctx, urlStr, f.opts)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.entries[urlStr] = cacheEntry{result: result, fetchedAt: f.now()}
	f.mu.Unlock()

	return &CachedResult{Result: result}, nil
}

// Invalidate drops a URL from the cache, forcing the next Fetch to hit the
// network.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.mu.Lock()
	delete(f.entries, urlStr)
	f.mu.Unlock()
}
