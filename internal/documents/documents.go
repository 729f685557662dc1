// Package documents extracts plain text from résumé uploads (PDF, DOCX, text).
package documents

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported document format.
type Format string

const (
	// FormatPDF is a PDF document
	FormatPDF Format = "pdf"
	// FormatDOCX is an Office Open XML word document
	FormatDOCX Format = "docx"
	// FormatText is UTF-8 plain text (including Markdown)
	FormatText Format = "text"
)

// MaxSize is the largest accepted document.
const MaxSize = 5 << 20

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var (
	// ErrUnsupportedFormat is returned for documents that are not PDF, DOCX or text
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrEmptyDocument is returned when no text could be extracted
	ErrEmptyDocument = errors.New("no text content found in document")
	// ErrTooLarge is returned for documents over MaxSize
	ErrTooLarge = errors.New("document exceeds 5 MiB limit")
)

// Error wraps a failure to read a document of a known format.
type Error struct {
	Format Format
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to read %s document: %v", e.Format, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DetectFormat determines the format from the file extension, then the
// declared content type, then the leading bytes.
func DetectFormat(filename, contentType string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".md", ".markdown", ".text":
		return FormatText, nil
	}

	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mediaType {
	case "application/pdf":
		return FormatPDF, nil
	case docxMIME:
		return FormatDOCX, nil
	case "text/plain", "text/markdown":
		return FormatText, nil
	}

	switch sniffed := http.DetectContentType(data); {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return FormatPDF, nil
	case sniffed == "application/zip" && bytes.Contains(data, []byte("word/")):
		return FormatDOCX, nil
	case strings.HasPrefix(sniffed, "text/plain") && utf8.Valid(data):
		return FormatText, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, describe(filename, mediaType))
}

func describe(filename, mediaType string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	if mediaType != "" {
		return mediaType
	}
	return "unknown"
}

// ExtractText returns the cleaned text of a document.
func ExtractText(format Format, data []byte) (string, error) {
	if len(data) > MaxSize {
		return "", ErrTooLarge
	}

	var (
		text string
		err  error
	)
	switch format {
	case FormatText:
		if !utf8.Valid(data) {
			return "", &Error{Format: format, Cause: errors.New("text is not valid UTF-8")}
		}
		text = string(data)
	case FormatPDF:
		text, err = extractPDFText(data)
	case FormatDOCX:
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", &Error{Format: format, Cause: err}
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// ExtractFile reads a document from disk and returns its cleaned text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	format, err := DetectFormat(path, "", data)
	if err != nil {
		return "", err
	}
	return ExtractText(format, data)
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}
	return textBuilder.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:br />`)
	docxTab          = regexp.MustCompile(`<w:tab/>|<w:tab />`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText turns WordprocessingML into text with one line per paragraph.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
