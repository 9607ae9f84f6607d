package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is a rate limit tier for one endpoint prefix. A Limit of 0
// means unlimited. Paths ending in "/" match by prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // burst capacity; defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Allowlist       map[string]bool
	Endpoints       []EndpointConfig
}

// Environment defaults.
const (
	defaultOptimizePerHour = 30
	defaultLimit           = 600
	defaultWindow          = time.Minute
	defaultCleanup         = 5 * time.Minute
)

// DefaultConfig returns the built-in limiter configuration: pipeline runs
// throttled per hour, writes per minute, reads under the global default.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: defaultCleanup,
		Allowlist:       map[string]bool{},
		Endpoints: []EndpointConfig{
			// Full pipeline runs fetch remote pages and may drive a headless
			// browser; keep them the scarcest resource.
			{Path: "/optimize", Method: "POST", Limit: defaultOptimizePerHour, Window: time.Hour, Burst: 5},
			{Path: "/optimize/stream", Method: "POST", Limit: defaultOptimizePerHour, Window: time.Hour, Burst: 5},

			{Path: "/profiles", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
			{Path: "/profiles/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
			{Path: "/profiles/", Method: "DELETE", Limit: 120, Window: time.Minute, Burst: 20},
			{Path: "/runs/", Method: "DELETE", Limit: 120, Window: time.Minute, Burst: 20},
		},
	}
}

// LoadConfig builds a Config from environment variables, falling back to the
// defaults. MAX_REQUESTS_PER_HOUR adjusts the pipeline-run tier.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	cfg.Enabled = envBool("RATE_LIMIT_ENABLED", true)
	if !cfg.Enabled {
		return cfg
	}

	cfg.DefaultLimit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Allowlist = parseClientList(os.Getenv("RATE_LIMIT_ALLOWLIST"))

	if perHour := envInt("MAX_REQUESTS_PER_HOUR", defaultOptimizePerHour); perHour != defaultOptimizePerHour {
		for i := range cfg.Endpoints {
			if strings.HasPrefix(cfg.Endpoints[i].Path, "/optimize") {
				cfg.Endpoints[i].Limit = perHour
			}
		}
	}

	return cfg
}

// matchTier resolves the tier for a request. Health checks are never
// limited; unknown endpoints fall back to the global default.
func (c *Config) matchTier(path, method string) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return nil
	}

	for i := range c.Endpoints {
		tier := &c.Endpoints[i]
		if tier.Method != method {
			continue
		}
		if tier.Path == path {
			return tier
		}
		if strings.HasSuffix(tier.Path, "/") && strings.HasPrefix(path, tier.Path) {
			return tier
		}
	}

	return &EndpointConfig{
		Path:   "/",
		Limit:  c.DefaultLimit,
		Window: c.DefaultWindow,
		Burst:  c.DefaultLimit,
	}
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseClientList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			result[entry] = true
		}
	}
	return result
}
