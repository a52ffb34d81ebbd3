// Package textextract turns uploaded resume files and fetched HTML into the
// plain text the matching engine reads.
package textextract

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("document contains no text")
	ErrInvalidDocument   = errors.New("document could not be parsed")
)

type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

var extFormats = map[string]Format{
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

var mediaFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"text/html":     FormatHTML,
	"text/plain":    FormatText,
	"text/markdown": FormatMarkdown,
}

// Detect picks the format from the file extension, then from the declared
// content type.
func Detect(fileName, contentType string) (Format, error) {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(fileName))]; ok {
		return f, nil
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if f, ok := mediaFormats[mt]; ok {
			return f, nil
		}
	}
	return "", ErrUnsupportedFormat
}

// Extract returns NFKC-normalized text with one paragraph per line.
func Extract(fileName, contentType string, data []byte) (string, error) {
	format, err := Detect(fileName, contentType)
	if err != nil {
		return "", err
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDF(data)
	case FormatDOCX:
		raw, err = extractDOCX(data)
	case FormatHTML:
		raw, err = HTMLText(string(data))
	default:
		raw = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidDocument, format, err)
	}

	text := Clean(raw)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// Clean applies NFKC (which folds ligatures such as "ﬁ" left behind by PDF
// fonts), collapses runs of horizontal whitespace and drops blank lines.
func Clean(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
