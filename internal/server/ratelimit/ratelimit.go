// Package ratelimit provides per-client request rate limiting using the
// token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to a burst capacity.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
	}
}

// take refills the bucket for the elapsed time and consumes one token if
// available. It reports whether the request is allowed, the tokens left, and
// when the bucket will next hold a full token.
func (b *tokenBucket) take(now time.Time) (allowed bool, remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		allowed = true
	}

	remaining = int(b.tokens)
	resetAt = now
	if b.tokens < 1.0 {
		resetAt = now.Add(time.Duration((1.0 - b.tokens) / b.refillRate * float64(time.Second)))
	}
	return allowed, remaining, resetAt
}

// Info reports the rate limit state for one decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages token buckets per client and endpoint tier.
type Limiter struct {
	config *Config

	mu         sync.Mutex
	buckets    map[string]*tokenBucket
	lastAccess map[string]time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}

	now func() time.Time
}

// NewLimiter creates a rate limiter. A nil config uses defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*tokenBucket),
		lastAccess: make(map[string]time.Time),
		now:        time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow decides whether a request from the client may proceed against the
// given endpoint. Clients on the allowlist bypass limiting entirely.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Allowlist[clientID] {
		return true, Info{Allowed: true}
	}

	tier := l.config.matchTier(path, method)
	if tier == nil || tier.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + tier.Path + ":" + method
	now := l.now()
	bucket := l.bucket(key, tier, now)

	allowed, remaining, resetAt := bucket.take(now)

	info := Info{
		Allowed:   allowed,
		Limit:     tier.Limit,
		Remaining: remaining,
		ResetTime: resetAt,
	}
	if !allowed {
		info.RetryAfter = max(time.Until(resetAt), 0)
	}
	return allowed, info
}

func (l *Limiter) bucket(key string, tier *EndpointConfig, now time.Time) *tokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastAccess[key] = now
	if b, ok := l.buckets[key]; ok {
		return b
	}

	burst := tier.Burst
	if burst <= 0 {
		burst = tier.Limit
	}
	b := newTokenBucket(burst, float64(tier.Limit)/tier.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.dropStaleBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// dropStaleBuckets removes buckets idle for over an hour so one-off clients
// do not accumulate forever.
func (l *Limiter) dropStaleBuckets() {
	cutoff := l.now().Add(-time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
