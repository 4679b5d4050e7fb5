package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Hello world",
			want:  "Hello world",
		},
		{
			name:  "collapses space runs",
			input: "Hello    world\t\ttabs",
			want:  "Hello world tabs",
		},
		{
			name:  "collapses blank line runs",
			input: "para one\n\n\n\n\npara two",
			want:  "para one\n\npara two",
		},
		{
			name:  "strips null bytes",
			input: "Hello\x00world",
			want:  "Helloworld",
		},
		{
			name:  "strips BOM",
			input: "\uFEFFHello",
			want:  "Hello",
		},
		{
			name:  "strips control characters",
			input: "Hello\x01\x02\x1Fworld",
			want:  "Helloworld",
		},
		{
			name:  "normalizes CRLF",
			input: "line one\r\nline two",
			want:  "line one\nline two",
		},
		{
			name:  "trims",
			input: "  \n  Hello  \n  ",
			want:  "Hello",
		},
		{
			name:  "drops non-ASCII",
			input: "café menu",
			want:  "caf menu",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \t\n\r ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello world",
		"Hello    world\n\n\n\nagain",
		"\uFEFF\x00 mixed \x01 control \r\n chars \t\t here",
		"café — résumé",
		string([]byte{0xE9, 0x20, 0x41}), // bare latin-1 byte
		"",
		"   ",
		strings.Repeat("word  ", 500),
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalize_RepairsLatin1(t *testing.T) {
	// "café" encoded as ISO-8859-1: the 0xE9 byte is invalid UTF-8 on its own.
	input := string([]byte{'c', 'a', 'f', 0xE9, ' ', 'o', 'k'})
	got := Normalize(input)
	// The é decodes via latin-1 and is then dropped by the printable-ASCII
	// filter; the surrounding text must survive intact.
	if got != "caf ok" {
		t.Errorf("Normalize() = %q, want %q", got, "caf ok")
	}
}

func TestNormalize_RepairsWindows1252(t *testing.T) {
	// 0x93/0x94 are smart quotes in Windows-1252 and C1 controls in latin-1.
	input := string([]byte{0x93, 'q', 'u', 'o', 't', 'e', 'd', 0x94})
	got := Normalize(input)
	if !strings.Contains(got, "quoted") {
		t.Errorf("Normalize() = %q, want text preserved", got)
	}
}

func TestNormalizeStrict(t *testing.T) {
	if _, err := NormalizeStrict("   \n\t  "); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("NormalizeStrict() error = %v, want ErrEmptyContent", err)
	}

	got, err := NormalizeStrict("  content  ")
	if err != nil {
		t.Fatalf("NormalizeStrict() error = %v", err)
	}
	if got != "content" {
		t.Errorf("NormalizeStrict() = %q, want %q", got, "content")
	}
}
