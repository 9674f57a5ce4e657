package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // Requests per window; zero or less means unlimited
	Window time.Duration // Refill window
	Burst  int           // Bucket size, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused client bucket is kept.
	IdleTTL   time.Duration
	Whitelist map[string]bool
	Blacklist map[string]bool
	Endpoints []EndpointConfig
}

// DefaultConfig returns an enabled limiter allowing perMinute requests per client on
// ordinary routes. The whitelist and blacklist are comma-separated IP lists.
func DefaultConfig(perMinute int, whitelist, blacklist string) *Config {
	if perMinute <= 0 {
		perMinute = 600
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    perMinute,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       ParseIPList(whitelist),
		Blacklist:       ParseIPList(blacklist),
		Endpoints:       DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits. Report generation calls the LLM and is
// the strictest; writes that persist analyses come next.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/reports/generate", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/reports/normalize/batch", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/analyses", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/analyses/", Method: "DELETE", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
