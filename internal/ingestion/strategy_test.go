package ingestion

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyHTML = `<html>
<head>
  <title>Acme Corp</title>
  <meta name="description" content="We build rockets.">
  <script>var tracking = "ignore me";</script>
</head>
<body>
  <nav>Home</nav>
  <main>
    <h2>About us</h2>
    <p>Acme has been building reliable rockets for over fifty years.</p>
  </main>
</body>
</html>`

func TestCompanyStrategy_MainContent(t *testing.T) {
	text, err := NewCompanyStrategy().Extract(companyHTML)
	require.NoError(t, err)
	assert.Equal(t,
		"Company: Acme Corp Description: We build rockets. Company Information: About us Acme has been building reliable rockets for over fifty years.",
		text)
}

func TestCompanyStrategy_SkipsShortBlocks(t *testing.T) {
	html := `<html><head><title>Acme</title></head><body>
<main>Too short to count</main>
<div class="about">Acme designs launch systems and satellite buses for commercial customers worldwide.</div>
</body></html>`

	text, err := NewCompanyStrategy().Extract(html)
	require.NoError(t, err)
	assert.NotContains(t, text, "Too short to count")
	assert.Contains(t, text, "Company Information: Acme designs launch systems")
}

func TestCompanyStrategy_KeepsEveryQualifyingBlock(t *testing.T) {
	html := `<html><body>
<article>Our mission is to make spaceflight routine, affordable and safe for everyone on Earth.</article>
<div class="company-info">Founded in 1970, headquartered in Springfield, with 4,000 employees today.</div>
</body></html>`

	text, err := NewCompanyStrategy().Extract(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Our mission is to make spaceflight routine")
	assert.Contains(t, text, "Founded in 1970")
	assert.NotContains(t, text, "Company:")
}

func TestCompanyStrategy_BodyFallbackTruncated(t *testing.T) {
	body := strings.Repeat("rocket ", 600)
	html := `<html><head><title>T</title></head><body><div>` + body + `</div></body></html>`

	text, err := NewCompanyStrategy().Extract(html)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Company: T Company Information: rocket"))
	assert.LessOrEqual(t, utf8.RuneCountInString(text), len("Company: T Company Information: ")+CompanyBodyLimit)
}

func TestCompanyStrategy_ShortBodyIgnored(t *testing.T) {
	text, err := NewCompanyStrategy().Extract(`<html><body><p>Hello</p></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestJobStrategy_LongestBlockWins(t *testing.T) {
	description := "We are hiring a Senior Go Engineer to build distributed systems. " +
		"You will design APIs, own services in production and mentor engineers."
	html := `<html>
<head><title>Senior Go Engineer</title></head>
<body>
  <h1>Senior Go Engineer</h1>
  <div class="content">Apply today</div>
  <div class="job-description">
    <p>` + description + `</p>
  </div>
</body>
</html>`

	text, err := NewJobStrategy("https://careers.acme.example/jobs/42").Extract(html)
	require.NoError(t, err)
	assert.Equal(t, "Job Title: Senior Go Engineer\n\nJob Description:\n"+description, text)
}

func TestJobStrategy_TitleFromHeading(t *testing.T) {
	html := `<html><body><h1>Data Engineer</h1><h1>Other</h1><article>Build pipelines.</article></body></html>`

	text, err := NewJobStrategy("https://example.com/job").Extract(html)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Job Title: Data Engineer\n\n"))
	assert.Contains(t, text, "Job Description:\nBuild pipelines.")
}

func TestJobStrategy_BodyFallback(t *testing.T) {
	html := `<html><body><div>Plain page   with
	no known containers</div></body></html>`

	text, err := NewJobStrategy("https://example.com/job").Extract(html)
	require.NoError(t, err)
	assert.Equal(t, "Job Description:\nPlain page with no known containers", text)
}

func TestJobStrategy_Truncates(t *testing.T) {
	html := `<html><body><div class="job-description">` + strings.Repeat("é", 5000) + `</div></body></html>`

	text, err := NewJobStrategy("https://example.com/job").Extract(html)
	require.NoError(t, err)

	desc := strings.TrimPrefix(text, "Job Description:\n")
	assert.True(t, strings.HasSuffix(desc, TruncationMarker))
	assert.Equal(t, JobTextLimit+len(TruncationMarker), utf8.RuneCountInString(desc))
	assert.True(t, utf8.ValidString(desc))
}

func TestJobStrategy_GreenhouseNoiseRemoved(t *testing.T) {
	html := `<html><body>
<div class="job__description body">
  <p>Own the billing platform end to end.</p>
  <form id="application-form">First name Last name Email Submit application</form>
</div>
</body></html>`

	text, err := NewJobStrategy("https://boards.greenhouse.io/acme/jobs/123").Extract(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Own the billing platform end to end.")
	assert.NotContains(t, text, "Submit application")
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \n\n\t b\r\nc  "))
	assert.Equal(t, "", collapseWhitespace(" \n "))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "hé...", truncateRunes("héllo", 2, "..."))
	assert.Equal(t, "héllo", truncateRunes("héllo", 5, "..."))
	assert.Equal(t, "面试", truncateRunes("面试准备", 2, ""))
	assert.Equal(t, "abc", truncateRunes("abc", 0, "..."))
}
