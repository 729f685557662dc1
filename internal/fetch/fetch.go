// Package fetch retrieves web pages for content extraction, over plain HTTP
// or through a headless browser for script-rendered pages.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is a desktop browser user agent; many career sites block obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	Headers      map[string]string
	MaxBodyBytes int64
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func (o *Options) withDefaults() *Options {
	out := *o
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.UserAgent == "" {
		out.UserAgent = DefaultUserAgent
	}
	if out.MaxBodyBytes <= 0 {
		out.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &out
}

// URL retrieves HTML content from a URL. Only http and https are accepted.
// A non-200 status returns both the Result and an *Error.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	opts = opts.withDefaults()

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Host == "" || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBodyBytes))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}

// JobPostingSelectors returns the ordered selectors scanned for a job description.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-details",
		".description",
		".content",
		"main",
		"article",
		".posting-content",
		"#job-description",
		".job-summary",
	}
}

// CompanyPageSelectors returns the ordered selectors scanned on company pages.
func CompanyPageSelectors() []string {
	return []string{
		"main",
		"article",
		".content",
		".main-content",
		"#content",
		"#main",
		".about",
		".company-info",
	}
}
