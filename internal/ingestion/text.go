package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	blankLines    = regexp.MustCompile(`\n\s*\n`)
)

// collapseWhitespace replaces every whitespace run with one space, collapses
// blank lines and trims the result.
func collapseWhitespace(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// truncateRunes cuts text to at most limit runes and appends marker when it
// was shortened. UTF-8 sequences are never split.
func truncateRunes(text string, limit int, marker string) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i] + marker
		}
		count++
	}
	return text
}

// runeLen returns the number of characters in text.
func runeLen(text string) int {
	return utf8.RuneCountInString(text)
}

// WriteOutput writes the extracted text and its metadata as <name>.txt and
// <name>.meta.json in outDir.
func WriteOutput(outDir, name, text string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(outDir, name+".txt")
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}

	metaPath := filepath.Join(outDir, name+".meta.json")
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
