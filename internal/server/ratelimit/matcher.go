package ratelimit

import (
	"slices"
	"strings"
)

// MatchEndpoint returns the rule for path and method, or nil when the default
// applies. Unlimited paths yield a zero-limit rule. Exact paths win over
// prefix rules, which are those ending in "/".
func MatchEndpoint(path, method string, configs []EndpointConfig, unlimited []string) *EndpointConfig {
	if slices.Contains(unlimited, path) {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}
