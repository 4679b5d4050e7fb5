package extract

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrEmptyContent is returned when a document contains no usable text after
// normalization.
var ErrEmptyContent = errors.New("no text content after normalization")

var (
	reSpaceRun = regexp.MustCompile(`[ \t]+`)
	reBlankRun = regexp.MustCompile(`\n[ \t]*\n[\s]*`)
	reMultiGap = regexp.MustCompile(` {2,}`)
)

// Normalize turns arbitrary text into clean, embeddable plain text. It repairs
// broken byte encodings, strips null bytes, BOMs and control characters,
// collapses whitespace runs and trims the result.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		s = repairEncoding([]byte(s))
	}

	// Strip null bytes and byte-order marks.
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, "\uFEFF", "")
	s = strings.ReplaceAll(s, "\xFE\xFF", "")
	s = strings.ReplaceAll(s, "\xFF\xFE", "")

	// Normalize line endings so the collapse rules below only deal with \n.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	// Collapse runs of horizontal whitespace to single spaces and runs of
	// blank lines to exactly one blank line.
	s = reSpaceRun.ReplaceAllString(s, " ")
	s = reBlankRun.ReplaceAllString(s, "\n\n")

	// Keep printable ASCII plus newline and tab; everything else interferes
	// with downstream embedding and JSON encoding.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 0x20 && r <= 0x7E) || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	s = reMultiGap.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// NormalizeStrict normalizes and fails with ErrEmptyContent when nothing
// usable remains.
func NormalizeStrict(s string) (string, error) {
	out := Normalize(s)
	if out == "" {
		return "", ErrEmptyContent
	}
	return out, nil
}

// repairEncoding probes a fixed candidate list (UTF-8, ISO-8859-1,
// Windows-1252, ASCII) and decodes with the first plausible match. When no
// candidate fits it coerces to UTF-8 by dropping invalid sequences.
func repairEncoding(b []byte) string {
	// ISO-8859-1 maps every byte, but 0x80-0x9F are control characters there;
	// their presence means the text is really Windows-1252.
	hasC1 := false
	for _, c := range b {
		if c >= 0x80 && c <= 0x9F {
			hasC1 = true
			break
		}
	}

	var cm *charmap.Charmap
	if hasC1 {
		cm = charmap.Windows1252
	} else {
		cm = charmap.ISO8859_1
	}
	if out, err := cm.NewDecoder().Bytes(b); err == nil && utf8.Valid(out) {
		return string(out)
	}

	// Forced coercion: drop anything that is not valid UTF-8.
	return string(bytes.ToValidUTF8(b, nil))
}
