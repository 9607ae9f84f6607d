package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Allowlist:     map[string]bool{},
		Endpoints: []EndpointConfig{
			{Path: "/optimize", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			{Path: "/profiles/", Method: "DELETE", Limit: 5, Window: time.Minute},
		},
	}
}

func TestLimiterAllowsWithinBurst(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/optimize", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	allowed, _ = l.Allow("1.2.3.4", "/optimize", "POST")
	assert.True(t, allowed)

	allowed, info = l.Allow("1.2.3.4", "/optimize", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("1.2.3.4", "/optimize", "POST")
	l.Allow("1.2.3.4", "/optimize", "POST")

	allowed, _ := l.Allow("5.6.7.8", "/optimize", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiterRefillsOverTime(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Allow("1.2.3.4", "/optimize", "POST")
	l.Allow("1.2.3.4", "/optimize", "POST")
	allowed, _ := l.Allow("1.2.3.4", "/optimize", "POST")
	require.False(t, allowed)

	// 2/hour refill rate: one token back after 30 minutes.
	current = current.Add(31 * time.Minute)
	allowed, _ = l.Allow("1.2.3.4", "/optimize", "POST")
	assert.True(t, allowed)
}

func TestLimiterPrefixMatch(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	_, info := l.Allow("1.2.3.4", "/profiles/p1", "DELETE")
	assert.Equal(t, 5, info.Limit)
}

func TestLimiterHealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 500; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiterAllowlistBypass(t *testing.T) {
	cfg := testConfig()
	cfg.Allowlist["10.0.0.1"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/optimize", "POST")
		require.True(t, allowed)
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/optimize", "POST")
		require.True(t, allowed)
	}
}

func TestLoadConfigMaxRequestsPerHour(t *testing.T) {
	t.Setenv("MAX_REQUESTS_PER_HOUR", "7")

	cfg := LoadConfig()
	tier := cfg.matchTier("/optimize", "POST")
	require.NotNil(t, tier)
	assert.Equal(t, 7, tier.Limit)
}

func TestLoadConfigDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestMatchTierFallsBackToDefault(t *testing.T) {
	cfg := testConfig()
	tier := cfg.matchTier("/runs", "GET")
	require.NotNil(t, tier)
	assert.Equal(t, cfg.DefaultLimit, tier.Limit)
}

func TestDropStaleBuckets(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Allow("1.2.3.4", "/optimize", "POST")
	require.Len(t, l.buckets, 1)

	current = current.Add(2 * time.Hour)
	l.dropStaleBuckets()
	assert.Empty(t, l.buckets)
}
