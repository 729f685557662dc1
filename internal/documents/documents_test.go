package documents

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx writes a minimal WordprocessingML package with one paragraph per entry.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		data        []byte
		want        Format
		wantErr     bool
	}{
		{name: "pdf extension", filename: "resume.PDF", want: FormatPDF},
		{name: "docx extension", filename: "cv.docx", want: FormatDOCX},
		{name: "markdown extension", filename: "resume.md", want: FormatText},
		{name: "pdf content type", filename: "upload", contentType: "application/pdf", want: FormatPDF},
		{name: "docx content type", contentType: docxMIME, want: FormatDOCX},
		{name: "text content type with charset", contentType: "text/plain; charset=utf-8", want: FormatText},
		{name: "sniff pdf", data: []byte("%PDF-1.7\n..."), want: FormatPDF},
		{name: "sniff text", data: []byte("Jane Doe\nSenior Engineer"), want: FormatText},
		{name: "image", filename: "photo.png", contentType: "image/png", data: []byte("\x89PNG\r\n\x1a\n"), wantErr: true},
		{name: "legacy doc", filename: "resume.doc", contentType: "application/msword", data: []byte{0xD0, 0xCF, 0x11, 0xE0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.filename, tt.contentType, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_SniffDocx(t *testing.T) {
	format, err := DetectFormat("", "application/octet-stream", buildDocx(t, "x"))
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, format)
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText(FormatText, []byte("Jane Doe\r\n\r\n\r\n\r\nSenior   Engineer\n• Go\n• Python  "))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSenior Engineer\n- Go\n- Python", text)
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	_, err := ExtractText(FormatText, []byte{0xff, 0xfe, 0xfd})
	var docErr *Error
	assert.True(t, errors.As(err, &docErr))
}

func TestExtractText_Empty(t *testing.T) {
	_, err := ExtractText(FormatText, []byte("  \n\t "))
	assert.True(t, errors.Is(err, ErrEmptyDocument))
}

func TestExtractText_TooLarge(t *testing.T) {
	_, err := ExtractText(FormatText, bytes.Repeat([]byte("a"), MaxSize+1))
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestExtractText_Docx(t *testing.T) {
	data := buildDocx(t, "Jane Doe", "Senior backend engineer, 5 years Go/Python", "R&amp;D lead")

	text, err := ExtractText(FormatDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior backend engineer, 5 years Go/Python\nR&D lead", text)
}

func TestExtractText_CorruptDocx(t *testing.T) {
	_, err := ExtractText(FormatDOCX, []byte("PK not really a zip"))
	var docErr *Error
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, FormatDOCX, docErr.Format)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText(FormatPDF, []byte("%PDF-1.4 truncated"))
	var docErr *Error
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, FormatPDF, docErr.Format)
}

func TestExtractText_UnknownFormat(t *testing.T) {
	_, err := ExtractText(Format("rtf"), []byte("{\\rtf1}"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Jane Doe  \n"), 0644))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", text)

	_, err = ExtractFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go</w:t></w:r></w:p><w:p><w:r><w:t>A &lt; B</w:t></w:r></w:p>`
	assert.Equal(t, "Skills:\tGo\nA < B\n", docxXMLToText(xml))
}
