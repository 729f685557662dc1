package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedOutput is returned when no JSON value can be recovered from model output.
var ErrMalformedOutput = errors.New("invalid JSON response from language model")

var (
	jsonFenceOpen  = regexp.MustCompile("```json\\s*")
	jsonFenceClose = regexp.MustCompile("```\\s*$")
	beforeObject   = regexp.MustCompile(`^[^{]*`)
	afterObject    = regexp.MustCompile(`[^}]*$`)
)

// ExtractJSON recovers a JSON value from raw model text in two passes.
// The first pass removes ```json fences and a closing fence at the end. The
// second pass, used only when the first does not parse, drops everything
// before the first '{' and after the last '}'. Nothing further is attempted.
func ExtractJSON(text string) (json.RawMessage, error) {
	cleaned := jsonFenceOpen.ReplaceAllString(text, "")
	cleaned = jsonFenceClose.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}

	cleaned = beforeObject.ReplaceAllString(cleaned, "")
	cleaned = afterObject.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}

	var v any
	err := json.Unmarshal([]byte(cleaned), &v)
	return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
}

// CleanJSONResponse normalizes model output into a decoded JSON value.
// Strings and byte slices are parsed with ExtractJSON; maps, slices and other
// structured values are returned unchanged. Nil and scalar values are rejected.
func CleanJSONResponse(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return decodeExtracted(val)
	case []byte:
		return decodeExtracted(string(val))
	case json.RawMessage:
		return decodeExtracted(string(val))
	case nil, bool, float64, float32, int, int64, json.Number:
		return nil, fmt.Errorf("%w: unexpected response type %T", ErrMalformedOutput, v)
	default:
		return v, nil
	}
}

func decodeExtracted(text string) (any, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return out, nil
}
