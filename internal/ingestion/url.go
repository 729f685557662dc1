// Package ingestion extracts prompt-ready text from company websites and job postings.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/interview-prep/internal/fetch"
	"go.uber.org/zap"
)

// Kind identifies what a page is scraped for.
type Kind string

const (
	// KindCompany is a company website
	KindCompany Kind = "company"
	// KindJob is a job posting
	KindJob Kind = "job"
)

// Fallback strings substituted by callers when extraction fails.
const (
	CompanyInfoUnavailable = "Company information unavailable"
	JobInfoUnavailable     = "Job information unavailable"
)

var (
	// ErrHTTPRequestFailed is returned when the page could not be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when the page could not be turned into text
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// ExtractionError reports a failed scrape. Callers downgrade it to a fallback string.
type ExtractionError struct {
	URL   string
	Kind  Kind
	Cause error
}

func (e *ExtractionError) Error() string {
	switch e.Kind {
	case KindJob:
		return fmt.Sprintf("failed to extract job information from %s: %v", e.URL, e.Cause)
	default:
		return fmt.Sprintf("failed to scrape website %s: %v", e.URL, e.Cause)
	}
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// PageSource returns the HTML for a URL.
type PageSource func(ctx context.Context, url string) (string, error)

// Extractor fetches pages and runs the matching Strategy over them.
type Extractor struct {
	// Company builds company text; defaults to NewCompanyStrategy.
	Company Strategy
	// Job builds job text for a URL; defaults to NewJobStrategy.
	Job func(url string) Strategy

	useBrowser bool
	fetchPage  PageSource
	renderPage PageSource
	logger     *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBrowserFallback renders pages whose HTTP extraction is shorter than
// fetch.MinContentLength in a headless browser.
func WithBrowserFallback(enabled bool, timeout time.Duration) Option {
	return func(e *Extractor) {
		e.useBrowser = enabled
		e.renderPage = func(ctx context.Context, url string) (string, error) {
			return fetch.WithBrowser(ctx, url, timeout, e.logger)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPageSource replaces the HTTP fetcher.
func WithPageSource(src PageSource) Option {
	return func(e *Extractor) {
		e.fetchPage = src
	}
}

// NewExtractor creates an Extractor fetching over HTTP with opts.
func NewExtractor(fetchOpts *fetch.Options, opts ...Option) *Extractor {
	e := &Extractor{
		Company: NewCompanyStrategy(),
		Job:     func(url string) Strategy { return NewJobStrategy(url) },
		logger:  zap.NewNop(),
		fetchPage: func(ctx context.Context, url string) (string, error) {
			result, err := fetch.URL(ctx, url, fetchOpts)
			if err != nil {
				return "", err
			}
			return result.HTML, nil
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScrapeCompany extracts company information from a website.
func (e *Extractor) ScrapeCompany(ctx context.Context, url string) (string, *Metadata, error) {
	return e.extract(ctx, url, KindCompany, e.Company)
}

// ExtractJob extracts the job title and description from a posting.
func (e *Extractor) ExtractJob(ctx context.Context, url string) (string, *Metadata, error) {
	return e.extract(ctx, url, KindJob, e.Job(url))
}

func (e *Extractor) extract(ctx context.Context, url string, kind Kind, strategy Strategy) (string, *Metadata, error) {
	log := e.logger.With(zap.String("url", url), zap.String("kind", string(kind)))
	log.Info("scraping page")

	html, err := e.fetchPage(ctx, url)
	if err != nil {
		log.Warn("fetch failed", zap.Error(err))
		return "", nil, &ExtractionError{URL: url, Kind: kind, Cause: fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)}
	}

	text, err := strategy.Extract(html)
	if err != nil {
		return "", nil, &ExtractionError{URL: url, Kind: kind, Cause: fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)}
	}

	rendered := false
	if e.useBrowser && e.renderPage != nil && fetch.ShouldUseBrowser(text) {
		log.Debug("content too short, rendering in browser", zap.Int("chars", runeLen(text)))
		if browserHTML, renderErr := e.renderPage(ctx, url); renderErr != nil {
			log.Warn("browser rendering failed, keeping HTTP content", zap.Error(renderErr))
		} else if browserText, extractErr := strategy.Extract(browserHTML); extractErr == nil && runeLen(browserText) > runeLen(text) {
			text = browserText
			rendered = true
		}
	}

	if text == "" {
		// A reachable company site with nothing worth keeping is not a failure;
		// the caller reports the company context as unavailable.
		if kind == KindCompany {
			log.Warn("no company content found")
			return "", NewMetadata("", url, kind), nil
		}
		return "", nil, &ExtractionError{URL: url, Kind: kind, Cause: ErrContentExtractionFailed}
	}

	metadata := NewMetadata(text, url, kind)
	metadata.Rendered = rendered
	if kind == KindJob {
		metadata.Platform = string(fetch.DetectPlatform(url))
	}

	log.Info("scraped page", zap.Int("chars", metadata.Characters), zap.Bool("rendered", rendered))
	return text, metadata, nil
}
