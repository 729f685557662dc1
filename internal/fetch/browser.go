package fetch

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	// MinContentLength is the character count below which plain HTTP
	// extraction is treated as a script-rendered shell page.
	MinContentLength = 500
	// DefaultBrowserTimeout bounds a headless browser render.
	DefaultBrowserTimeout = 30 * time.Second
	// renderSettle is how long client-side rendering gets after the body is ready.
	renderSettle = 3 * time.Second
)

// ShouldUseBrowser reports whether extracted text is short enough that the
// page probably builds its content in JavaScript.
func ShouldUseBrowser(extractedText string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a career page or company site in headless Chrome and
// returns the resulting HTML. Chrome or Chromium must be installed.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	logger.Debug("starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("browser rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}
