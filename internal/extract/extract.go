package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for file extensions outside the supported
// set (pdf, docx, txt).
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractionError wraps a parser failure for a supported format. The
// underlying parser error is surfaced verbatim; partial text is never
// returned.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extract pulls plain text out of an uploaded document. The declared
// extension selects the parser; the result is normalized before returning.
// An empty document after normalization fails with ErrEmptyContent.
func Extract(data []byte, ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))

	var (
		text string
		err  error
	)
	switch ext {
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDOCX(data)
	case "txt":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}

	return NormalizeStrict(text)
}

func extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Format: "pdf", Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Err: err}
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Err: err}
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Err: err}
	}
	return string(b), nil
}

// extractDOCX reads word/document.xml from the OOXML container and gathers
// the text runs (<w:t> elements).
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: "docx", Err: err}
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", &ExtractionError{Format: "docx", Err: errors.New("word/document.xml not found")}
	}

	rc, err := doc.Open()
	if err != nil {
		return "", &ExtractionError{Format: "docx", Err: err}
	}
	defer func() {
		_ = rc.Close()
	}()

	text, err := collectTextElements(rc)
	if err != nil {
		return "", &ExtractionError{Format: "docx", Err: err}
	}
	return text, nil
}

// collectTextElements walks an XML stream and joins the character data of
// every <t> element (the text run element in WordprocessingML).
func collectTextElements(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "t" {
			continue
		}
		var v string
		if err := dec.DecodeElement(&v, &se); err != nil {
			return "", err
		}
		if v != "" {
			out.WriteString(v)
			out.WriteString(" ")
		}
	}
	return out.String(), nil
}
