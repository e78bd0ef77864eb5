package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// envPrefix marks rate limit environment variables, e.g. CVTEXT_RATE_LIMIT_ENABLED.
const envPrefix = "CVTEXT_RATE_LIMIT_"

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // time window
	Burst  int           // burst capacity, Limit when 0
}

// LoadConfig loads rate limiting configuration from CVTEXT_RATE_LIMIT_* variables.
func LoadConfig() *Config {
	if !getEnvBool("ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv(envPrefix + "WHITELIST")),
		Blacklist:       parseIPList(os.Getenv(envPrefix + "BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Writes hit the database
		{Path: "/documents", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/documents/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Parsing is CPU only
		{Path: "/parse", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/dates/format", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(envPrefix + key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(envPrefix + key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
