package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig limits one route. Path is a route pattern where "*" matches exactly one segment
// and a trailing "/" matches any suffix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per window
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// LoadConfig reads EDUPLAN_RATE_LIMIT_* environment variables
func LoadConfig() *Config {
	if !getEnvBool("EDUPLAN_RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("EDUPLAN_RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("EDUPLAN_RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("EDUPLAN_RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("EDUPLAN_RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("EDUPLAN_RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs limits the routes that call the language model or start a browser
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// whole-plan drafts and batch field fills are the most expensive oracle calls
		{Path: "/plan/fill", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/plan/profile/fill-empty", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},

		// single oracle calls
		{Path: "/plan/profile/*/fill", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/plan/idea/refine", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/plan/selection", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},

		// headless browser
		{Path: "/plan/document.pdf", Method: "GET", Limit: 10, Window: time.Minute, Burst: 2},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
