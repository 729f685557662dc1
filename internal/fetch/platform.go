package fetch

import (
	"net/url"
	"slices"
	"strings"
)

// Platform is an applicant tracking system that hosts job postings.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

// jobBoard describes where a platform keeps the posting text and which
// blocks around it are application forms or legal boilerplate.
type jobBoard struct {
	platform Platform
	domains  []string
	content  []string
	noise    []string
}

var jobBoards = []jobBoard{
	{
		platform: PlatformGreenhouse,
		domains:  []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		domains:  []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		domains:  []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		domains:  []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", "[class*='jobPosting']"},
		noise:    []string{"[class*='applicationForm']"},
	},
}

// applicationNoise is removed from every posting: forms, EEO statements,
// share widgets and cookie banners.
var applicationNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".social-links",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board hosting urlStr. A host matches a
// board when it equals one of the board's domains or is a subdomain of one.
func DetectPlatform(urlStr string) Platform {
	if board, ok := lookupBoard(urlStr); ok {
		return board.platform
	}
	return PlatformUnknown
}

func lookupBoard(urlStr string) (jobBoard, bool) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return jobBoard{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, board := range jobBoards {
		for _, domain := range board.domains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return board, true
			}
		}
	}
	return jobBoard{}, false
}

func boardFor(platform Platform) (jobBoard, bool) {
	for _, board := range jobBoards {
		if board.platform == platform {
			return board, true
		}
	}
	return jobBoard{}, false
}

// PlatformContentSelectors returns the posting selectors of a platform, best first.
func PlatformContentSelectors(platform Platform) []string {
	board, ok := boardFor(platform)
	if !ok {
		return nil
	}
	return slices.Clone(board.content)
}

// JobSelectorsFor returns the platform's selectors followed by the generic job
// posting selectors, without duplicates.
func JobSelectorsFor(platform Platform) []string {
	var out []string
	for _, sel := range append(PlatformContentSelectors(platform), JobPostingSelectors()...) {
		if !slices.Contains(out, sel) {
			out = append(out, sel)
		}
	}
	return out
}

// PlatformNoiseSelectors returns the blocks stripped before extraction: the
// shared application noise plus the platform's own.
func PlatformNoiseSelectors(platform Platform) []string {
	out := slices.Clone(applicationNoise)
	if board, ok := boardFor(platform); ok {
		out = append(out, board.noise...)
	}
	return out
}
