package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/1234", PlatformAshby},
		{"https://JOBS.LEVER.CO:443/acme/1", PlatformLever},
		{"https://notgreenhouse.io/jobs/1", PlatformUnknown},
		{"https://example.com/jobs", PlatformUnknown},
		{"https://linkedin.com/jobs/123", PlatformUnknown},
		{"://bad url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformGreenhouse)
	assert.Equal(t, ".job__description.body", selectors[0])
	assert.Empty(t, PlatformContentSelectors(PlatformUnknown))

	selectors[0] = "mutated"
	assert.Equal(t, ".job__description.body", PlatformContentSelectors(PlatformGreenhouse)[0])
}

func TestJobSelectorsFor(t *testing.T) {
	selectors := JobSelectorsFor(PlatformLever)
	require.NotEmpty(t, selectors)
	assert.Equal(t, ".posting-page", selectors[0])
	assert.Contains(t, selectors, ".job-description")

	count := 0
	for _, s := range selectors {
		if s == ".content" {
			count++
		}
	}
	assert.Equal(t, 1, count, "duplicate selectors should be removed")

	assert.Equal(t, JobPostingSelectors(), JobSelectorsFor(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, "form")
	assert.Contains(t, greenhouse, ".voluntary-self-id")

	unknown := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, unknown, ".cookie-banner")
	assert.NotContains(t, unknown, ".voluntary-self-id")
	assert.Len(t, unknown, len(applicationNoise))
}
