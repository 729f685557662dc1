package documents

import (
	"regexp"
	"strings"
)

var (
	inlineWhitespace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	excessBlankLines = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted document text while preserving its line structure:
// line endings become LF, runs of spaces collapse, bullets and headings keep
// their markers, and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\x00", "")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessBlankLines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses inner whitespace. Bullet glyphs from
// PDF exports are normalized to "- ".
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	for _, bullet := range []string{"• ", "· ", "▪ ", "* "} {
		if strings.HasPrefix(trimmed, bullet) {
			trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, bullet))
			break
		}
	}

	return inlineWhitespace.ReplaceAllString(trimmed, " ")
}
