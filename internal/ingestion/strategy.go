package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/interview-prep/internal/fetch"
)

// Strategy turns a page's HTML into prompt-ready plain text.
// Implementations are selector heuristics and may be swapped freely.
type Strategy interface {
	Extract(html string) (string, error)
}

// Company page limits.
const (
	// MinCompanyBlockLength is the length a matched block must exceed to be kept
	MinCompanyBlockLength = 50
	// MinCompanyBodyLength is the length the body fallback must exceed to be kept
	MinCompanyBodyLength = 100
	// CompanyBodyLimit caps the body fallback
	CompanyBodyLimit = 2000
	// JobTextLimit caps the job description
	JobTextLimit = 3000
	// TruncationMarker is appended to truncated job descriptions
	TruncationMarker = "..."
)

// scriptNoise is removed before any text is read.
const scriptNoise = "script, style, noscript, template"

// CompanyStrategy keeps every substantial content block of a company page.
type CompanyStrategy struct {
	Selectors []string
}

// NewCompanyStrategy returns a CompanyStrategy using the default company selectors.
func NewCompanyStrategy() *CompanyStrategy {
	return &CompanyStrategy{Selectors: fetch.CompanyPageSelectors()}
}

// Extract builds "Company: ... Description: ... Company Information: ..." text.
// Every selector whose text exceeds MinCompanyBlockLength contributes a block;
// when none does, the body text (if longer than MinCompanyBodyLength) is used,
// cut to CompanyBodyLimit characters. Whitespace is collapsed at the end.
func (s *CompanyStrategy) Extract(html string) (string, error) {
	doc, err := parseHTML(html)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if name := pageTitle(doc); name != "" {
		sb.WriteString("Company: " + name + "\n\n")
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
		sb.WriteString("Description: " + desc + "\n\n")
	}

	var blocks []string
	for _, selector := range s.Selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(selection.Text())
		if runeLen(text) > MinCompanyBlockLength {
			blocks = append(blocks, text)
		}
	}

	if len(blocks) == 0 {
		body := strings.TrimSpace(doc.Find("body").Text())
		if runeLen(body) > MinCompanyBodyLength {
			blocks = append(blocks, truncateRunes(body, CompanyBodyLimit, ""))
		}
	}

	if len(blocks) > 0 {
		sb.WriteString("Company Information:\n" + strings.Join(blocks, "\n\n"))
	}

	return collapseWhitespace(sb.String()), nil
}

// JobStrategy keeps the single longest matching block of a job posting.
type JobStrategy struct {
	Selectors      []string
	NoiseSelectors []string
}

// NewJobStrategy returns a JobStrategy for a posting URL, putting the
// selectors of a recognized job board first.
func NewJobStrategy(urlStr string) *JobStrategy {
	platform := fetch.DetectPlatform(urlStr)
	s := &JobStrategy{Selectors: fetch.JobSelectorsFor(platform)}
	if platform != fetch.PlatformUnknown {
		s.NoiseSelectors = fetch.PlatformNoiseSelectors(platform)
	}
	return s
}

// Extract builds "Job Title: ...\n\nJob Description:\n..." text. Among all
// matching selectors the longest text wins; with no match the body text is
// used. The description is whitespace-collapsed and cut to JobTextLimit
// characters followed by TruncationMarker.
func (s *JobStrategy) Extract(html string) (string, error) {
	doc, err := parseHTML(html)
	if err != nil {
		return "", err
	}
	if len(s.NoiseSelectors) > 0 {
		doc.Find(strings.Join(s.NoiseSelectors, ", ")).Remove()
	}

	var sb strings.Builder
	if title := pageTitle(doc); title != "" {
		sb.WriteString("Job Title: " + title + "\n\n")
	}

	description := ""
	for _, selector := range s.Selectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(selection.Text())
		if runeLen(text) > runeLen(description) {
			description = text
		}
	}
	if description == "" {
		description = strings.TrimSpace(doc.Find("body").Text())
	}

	description = truncateRunes(collapseWhitespace(description), JobTextLimit, TruncationMarker)
	sb.WriteString("Job Description:\n" + description)

	return sb.String(), nil
}

func parseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(scriptNoise).Remove()
	return doc, nil
}

// pageTitle returns the <title> text, else the first <h1>, whitespace-collapsed.
func pageTitle(doc *goquery.Document) string {
	if title := collapseWhitespace(doc.Find("title").Text()); title != "" {
		return title
	}
	return collapseWhitespace(doc.Find("h1").First().Text())
}
