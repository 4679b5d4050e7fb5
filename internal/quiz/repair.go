package quiz

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
)

// ParseQuizArray turns raw model output into draft questions. It never fails:
// repair stages of decreasing trust are tried in order and a generic fallback
// question is synthesized when every stage strikes out. Validation is a
// separate concern; the drafts returned here may still be rejected per
// question by Validate.
func ParseQuizArray(output string) []Draft {
	stages := []func(string) string{
		strings.TrimSpace,
		cleanOutput,
		manualFix,
	}

	s := output
	for _, stage := range stages {
		s = stage(s)
		if drafts, ok := tryParse(s); ok {
			return drafts
		}
	}

	return []Draft{fallbackDraft()}
}

// tryParse decodes a JSON array of question objects. Elements that fail to
// decode individually are skipped; at least one surviving draft counts as
// success.
func tryParse(s string) ([]Draft, bool) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elements); err != nil {
		return nil, false
	}

	drafts := make([]Draft, 0, len(elements))
	for _, el := range elements {
		var d Draft
		if err := json.Unmarshal(el, &d); err != nil {
			continue
		}
		drafts = append(drafts, d)
	}
	if len(drafts) == 0 {
		return nil, false
	}
	return drafts, true
}

var (
	reCodeFence    = regexp.MustCompile("(?s)```(?:json)?(.*?)```")
	reHTMLTags     = regexp.MustCompile(`<[^>]+>`)
	reTrailComma   = regexp.MustCompile(`,\s*([}\]])`)
	reMissingSep   = regexp.MustCompile(`}\s*{`)
	reLeadComma    = regexp.MustCompile(`([{\[])\s*,`)
	reNonPrintable = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
)

// cleanOutput applies the common textual repairs: chatty prose around the
// payload, code fences, HTML, trailing commas, single quotes, glued objects,
// and truncated closers.
func cleanOutput(s string) string {
	s = stripCodeFences(s)
	s = reHTMLTags.ReplaceAllString(s, "")
	s = extractArray(s)
	s = reTrailComma.ReplaceAllString(s, "$1")
	s = unescapeQuotes(s)
	s = normalizeSingleQuotes(s)
	s = reMissingSep.ReplaceAllString(s, "},{")
	s = reLeadComma.ReplaceAllString(s, "$1")
	s = closeTruncated(s)
	return strings.TrimSpace(s)
}

// manualFix is the last repair before giving up: byte-level cleanup plus
// force-wrapping the content as an array.
func manualFix(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = reNonPrintable.ReplaceAllString(s, "")
	s = strings.ToValidUTF8(s, "")
	s = html.UnescapeString(s)
	s = unescapeQuotes(s)
	s = forceWrap(s)
	return strings.TrimSpace(s)
}

// stripCodeFences unwraps ```json fences, keeping only the fenced body when
// one is present.
func stripCodeFences(s string) string {
	if m := reCodeFence.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return strings.ReplaceAll(s, "```", "")
}

// extractArray cuts the substring between the first '[' and the last ']'.
// Without a closing bracket the tail from '[' is kept for closeTruncated.
func extractArray(s string) string {
	start := strings.Index(s, "[")
	if start < 0 {
		return s
	}
	end := strings.LastIndex(s, "]")
	if end <= start {
		return s[start:]
	}
	return s[start : end+1]
}

// unescapeQuotes collapses doubled quotes, a model habit borrowed from CSV.
func unescapeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// normalizeSingleQuotes rewrites single-quoted strings as double-quoted.
// Content with legitimate apostrophes is left alone when it already carries
// double-quoted structure.
func normalizeSingleQuotes(s string) string {
	if strings.Contains(s, `"`) {
		return s
	}
	return strings.ReplaceAll(s, "'", `"`)
}

// closeTruncated appends the closing braces and brackets a truncated
// response is missing, counting delimiters outside string literals.
func closeTruncated(s string) string {
	var braces, brackets int
	inString := false
	escaped := false
	for _, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				braces++
			}
		case '}':
			if !inString {
				braces--
			}
		case '[':
			if !inString {
				brackets++
			}
		case ']':
			if !inString {
				brackets--
			}
		}
	}

	if inString {
		s += `"`
	}
	for ; braces > 0; braces-- {
		s += "}"
	}
	for ; brackets > 0; brackets-- {
		s += "]"
	}
	return s
}

// forceWrap ensures the content reads as a JSON array.
func forceWrap(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		return s
	}
	return "[" + s + "]"
}

// fallbackDraft synthesizes the guaranteed last-resort question so callers
// always have something to persist.
func fallbackDraft() Draft {
	return Draft{
		Type:        TypeMultipleChoice,
		Question:    "Which of the following best describes the main topic covered in this course material?",
		Difficulty:  "easy",
		Explanation: "Review the course material to identify its central topic.",
		Note:        "automatically generated placeholder after an unparseable model response",
		Options: []DraftOption{
			{Text: "The core concepts presented in the course material", IsCorrect: true},
			{Text: "An unrelated historical event"},
			{Text: "A topic from a different course"},
			{Text: "None of the material covered so far"},
		},
	}
}
