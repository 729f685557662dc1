package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a language-model failure.
type ErrorKind string

// Error kinds surfaced to callers.
const (
	// KindConfig means the provider is not usable (missing credential, unknown provider)
	KindConfig ErrorKind = "config"
	// KindAuth means the provider rejected the credential
	KindAuth ErrorKind = "auth"
	// KindQuota means the account has exhausted its quota or billing
	KindQuota ErrorKind = "quota"
	// KindUpstream covers every other provider failure
	KindUpstream ErrorKind = "upstream"
)

// Error is a classified language-model failure with a user-facing message.
type Error struct {
	Kind       ErrorKind
	Provider   Provider
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	name := e.Provider.DisplayName()
	switch e.Kind {
	case KindConfig:
		if e.Message != "" {
			return e.Message
		}
		return fmt.Sprintf("%s API key is not configured. Please set %s.", name, e.Provider.APIKeyEnv())
	case KindAuth:
		return fmt.Sprintf("Invalid %s API key. Please check your configuration.", name)
	case KindQuota:
		return fmt.Sprintf("%s API quota exceeded. Please check your account balance.", name)
	default:
		return fmt.Sprintf("%s API error: %s", name, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var llmErr *Error
	return errors.As(err, &llmErr) && llmErr.Kind == kind
}

func missingKeyError(p Provider) *Error {
	return &Error{Kind: KindConfig, Provider: p}
}

// ClassifyError maps a provider SDK error onto an *Error. Already classified
// errors are returned unchanged; nil stays nil.
func ClassifyError(p Provider, err error) error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindUpstream, Provider: p, Message: "request timed out", Cause: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Kind:       kindFor(apiErr.HTTPStatusCode, fmt.Sprint(apiErr.Code), apiErr.Type, apiErr.Message),
			Provider:   p,
			Message:    apiErr.Message,
			StatusCode: apiErr.HTTPStatusCode,
			Cause:      err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{
			Kind:       kindFor(reqErr.HTTPStatusCode, "", "", string(reqErr.Body)),
			Provider:   p,
			Message:    reqErr.Error(),
			StatusCode: reqErr.HTTPStatusCode,
			Cause:      err,
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg := gErr.Message
		if msg == "" {
			msg = gErr.Error()
		}
		return &Error{
			Kind:       kindFor(gErr.Code, "", "", msg),
			Provider:   p,
			Message:    msg,
			StatusCode: gErr.Code,
			Cause:      err,
		}
	}

	return &Error{
		Kind:     kindFor(0, "", "", err.Error()),
		Provider: p,
		Message:  err.Error(),
		Cause:    err,
	}
}

// kindFor inspects status, provider error code/type and message text.
func kindFor(status int, code, errType, message string) ErrorKind {
	lower := strings.ToLower(message)
	switch {
	case code == "invalid_api_key",
		status == http.StatusUnauthorized,
		strings.Contains(lower, "api key not valid"),
		strings.Contains(lower, "incorrect api key"):
		return KindAuth
	case code == "insufficient_quota",
		errType == "insufficient_quota",
		strings.Contains(lower, "insufficient_quota"),
		strings.Contains(lower, "exceeded your current quota"),
		strings.Contains(lower, "resource_exhausted"),
		strings.Contains(lower, "resourceexhausted"):
		return KindQuota
	case status == http.StatusForbidden && strings.Contains(lower, "api key"):
		return KindAuth
	case status == http.StatusTooManyRequests && strings.Contains(lower, "quota"):
		return KindQuota
	default:
		return KindUpstream
	}
}
