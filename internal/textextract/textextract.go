// Package textextract pulls plain text out of uploaded résumé files.
package textextract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported MIME types.
const (
	MIMEPlain = "text/plain"
	MIMEPDF   = "application/pdf"
	MIMEDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrNoText is returned when a supported document holds no readable text.
var ErrNoText = errors.New("document contains no text")

// UnsupportedTypeError reports an upload whose content is not PDF, DOCX or
// plain text.
type UnsupportedTypeError struct {
	MIME string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MIME)
}

// Detect sniffs the MIME type of data.
func Detect(data []byte) string {
	return mimetype.Detect(data).String()
}

// Extract returns the text of data after sniffing its type.
func Extract(data []byte) (string, error) {
	mtype := mimetype.Detect(data)

	var (
		text string
		err  error
	)
	switch {
	case mtype.Is(MIMEPDF):
		text, err = extractPDF(data)
	case mtype.Is(MIMEDOCX):
		text, err = extractDOCX(data)
	case mtype.Is(MIMEPlain):
		text = string(data)
	default:
		return "", &UnsupportedTypeError{MIME: mtype.String()}
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	tab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return documentText(doc.Editable().GetContent()), nil
}

// documentText converts WordprocessingML body XML to plain text.
func documentText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = tab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content))
}
