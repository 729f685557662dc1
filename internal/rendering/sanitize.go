// Package rendering prepares model-generated text for display surfaces.
package rendering

import (
	"regexp"
	"strings"
)

var scriptScheme = regexp.MustCompile(`(?i)javascript:`)

// SanitizeText removes angle brackets and javascript: schemes, then trims the result.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '<', '>':
			continue
		default:
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(scriptScheme.ReplaceAllString(result.String(), ""))
}

// DeepClean applies SanitizeText to every string inside a decoded JSON value.
// Maps and slices are copied; numbers, booleans and nil are returned unchanged.
func DeepClean(v any) any {
	switch val := v.(type) {
	case string:
		return SanitizeText(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = DeepClean(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = SanitizeText(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = DeepClean(item)
		}
		return out
	default:
		return v
	}
}
