// Package format turns model output into clean lesson HTML.
package format

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		// Generated content may legitimately mix raw HTML into markdown.
		html.WithUnsafe(),
	),
)

var (
	reHTMLTag     = regexp.MustCompile(`(?i)<(p|h[1-6]|ul|ol|li|div|table|strong|em|br)\b`)
	reEmptyPara   = regexp.MustCompile(`<p>(\s|&nbsp;)*</p>`)
	reOpenPara    = regexp.MustCompile(`<p>\s*<p>`)
	reClosePara   = regexp.MustCompile(`</p>\s*</p>`)
	reParaHeading = regexp.MustCompile(`<p>\s*(<h[1-6]>)`)
	reHeadingPara = regexp.MustCompile(`(</h[1-6]>)\s*</p>`)
	reInterTag    = regexp.MustCompile(`>\s+<`)
	reBlockClose  = regexp.MustCompile(`(</h[1-6]>|</p>|</ul>|</ol>)`)
	reTopHeading  = regexp.MustCompile(`<h[1-3]>`)
	reLeadPara    = regexp.MustCompile(`<p>(.*?)</p>`)
)

// FormatHTML converts generated lesson content into normalized HTML. Content
// that already carries HTML tags skips markdown conversion and goes straight
// to the repair pass.
func FormatHTML(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", nil
	}

	htmlText := content
	if !reHTMLTag.MatchString(content) {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("failed to convert markdown: %w", err)
		}
		htmlText = buf.String()
	}

	return repairHTML(htmlText), nil
}

// repairHTML fixes the structural defects generated HTML tends to carry and
// normalizes whitespace so the output is deterministic. Block-level closing
// tags are followed by a single newline.
func repairHTML(s string) string {
	s = reEmptyPara.ReplaceAllString(s, "")
	s = reOpenPara.ReplaceAllString(s, "<p>")
	s = reClosePara.ReplaceAllString(s, "</p>")
	s = reParaHeading.ReplaceAllString(s, "$1")
	s = reHeadingPara.ReplaceAllString(s, "$1")
	s = reInterTag.ReplaceAllString(s, "><")
	s = strings.TrimSpace(s)

	s = ensureHeading(s)

	s = reBlockClose.ReplaceAllString(s, "$1\n")
	return strings.TrimSuffix(s, "\n")
}

// ensureHeading promotes the first paragraph to a section heading when the
// content has no h1-h3 at all.
func ensureHeading(s string) string {
	if reTopHeading.MatchString(s) {
		return s
	}
	promoted := false
	return reLeadPara.ReplaceAllStringFunc(s, func(m string) string {
		if promoted {
			return m
		}
		promoted = true
		inner := reLeadPara.FindStringSubmatch(m)[1]
		return "<h2>" + inner + "</h2>"
	})
}
