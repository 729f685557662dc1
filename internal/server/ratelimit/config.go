package ratelimit

import (
	"strings"
	"time"
)

// Defaults used when no override is configured.
const (
	DefaultLimit           = 1000
	DefaultWindow          = time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

// Interview API paths with their own limits.
const (
	GenerateQuestionsPath = "/api/interview/generate-questions"
	EvaluateAnswersPath   = "/api/interview/evaluate-answers"
	HealthPath            = "/api/interview/health"
)

// EndpointConfig is the limit for one endpoint. Paths ending in "/" match by prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per window
	Window time.Duration
	Burst  int           // bucket capacity; Limit when zero
}

// Settings are the tunable limits. The endpoint rules are fixed.
type Settings struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       []string
	Blacklist       []string
}

// DefaultSettings returns limiting enabled with the package defaults.
func DefaultSettings() Settings {
	return Settings{
		Enabled:         true,
		DefaultLimit:    DefaultLimit,
		DefaultWindow:   DefaultWindow,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// NewConfig builds a limiter configuration with the interview endpoint rules.
func NewConfig(s Settings) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	if s.DefaultLimit <= 0 {
		s.DefaultLimit = DefaultLimit
	}
	if s.DefaultWindow <= 0 {
		s.DefaultWindow = DefaultWindow
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       ipSet(s.Whitelist),
		Blacklist:       ipSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
		UnlimitedPaths:  []string{HealthPath},
	}
}

// DefaultEndpointConfigs limits the model-backed endpoints, which each cost
// one completion call, to 30 per hour with a burst of 5.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: GenerateQuestionsPath, Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: EvaluateAnswersPath, Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
	}
}

// ipSet turns addresses into a set. Entries may themselves be comma-separated.
func ipSet(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range list {
		for _, ip := range strings.Split(entry, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				result[ip] = true
			}
		}
	}
	return result
}
