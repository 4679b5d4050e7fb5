package quiz

import (
	"errors"
	"testing"
)

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
	}{
		{"missing type", Draft{Question: "q"}},
		{"unknown type", Draft{Type: "ESSAY", Question: "q"}},
		{"missing question", Draft{Type: TypeMultipleChoice}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.draft, 3)
			var structErr *StructureError
			if !errors.As(err, &structErr) {
				t.Fatalf("Validate() error = %v, want StructureError", err)
			}
			if structErr.Index != 3 {
				t.Errorf("StructureError.Index = %d, want 3", structErr.Index)
			}
		})
	}
}

func TestValidate_MultipleChoice(t *testing.T) {
	tests := []struct {
		name    string
		options []DraftOption
		wantErr bool
	}{
		{
			name: "exactly one correct",
			options: []DraftOption{
				{Text: "a", IsCorrect: true},
				{Text: "b"},
			},
		},
		{
			name: "no correct option",
			options: []DraftOption{
				{Text: "a"},
				{Text: "b"},
			},
			wantErr: true,
		},
		{
			name: "two correct options",
			options: []DraftOption{
				{Text: "a", IsCorrect: true},
				{Text: "b", IsCorrect: true},
			},
			wantErr: true,
		},
		{
			name:    "single option",
			options: []DraftOption{{Text: "a", IsCorrect: true}},
			wantErr: true,
		},
		{
			name: "empty option text",
			options: []DraftOption{
				{Text: "a", IsCorrect: true},
				{Text: ""},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := Draft{Type: TypeMultipleChoice, Question: "q", Options: tt.options}
			err := Validate(&draft, 0)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MultipleSelect(t *testing.T) {
	draft := Draft{
		Type:     TypeMultipleSelect,
		Question: "q",
		Options: []DraftOption{
			{Text: "a", IsCorrect: true},
			{Text: "b", IsCorrect: true},
			{Text: "c"},
		},
	}
	if err := Validate(&draft, 0); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	oneCorrect := Draft{
		Type:     TypeMultipleSelect,
		Question: "q",
		Options: []DraftOption{
			{Text: "a", IsCorrect: true},
			{Text: "b"},
		},
	}
	if err := Validate(&oneCorrect, 0); err == nil {
		t.Error("Validate() should reject MULTIPLE_SELECT with one correct option")
	}
}

func TestValidate_TrueFalse(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		wantErr     bool
		wantAnswer  string
		wantCorrect string
	}{
		{name: "true", answer: "true", wantAnswer: "true", wantCorrect: "True"},
		{name: "mixed case", answer: " True ", wantAnswer: "true", wantCorrect: "True"},
		{name: "false", answer: "false", wantAnswer: "false", wantCorrect: "False"},
		{name: "missing", answer: "", wantErr: true},
		{name: "not boolean", answer: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := Draft{Type: TypeTrueFalse, Question: "q", CorrectAnswer: tt.answer}
			err := Validate(&draft, 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if draft.CorrectAnswer != tt.wantAnswer {
				t.Errorf("CorrectAnswer = %q, want %q", draft.CorrectAnswer, tt.wantAnswer)
			}
			if len(draft.Options) != 2 {
				t.Fatalf("synthesized %d options, want 2", len(draft.Options))
			}
			for _, opt := range draft.Options {
				if opt.IsCorrect != (opt.Text == tt.wantCorrect) {
					t.Errorf("option %q IsCorrect = %v", opt.Text, opt.IsCorrect)
				}
			}
		})
	}
}

func TestValidate_FreeText(t *testing.T) {
	for _, typ := range []string{TypeTypeAnswer, TypePuzzle} {
		draft := Draft{Type: typ, Question: "q", CorrectAnswer: "answer", Options: []DraftOption{{Text: "stray"}}}
		if err := Validate(&draft, 0); err != nil {
			t.Errorf("Validate(%s) error = %v", typ, err)
		}
		if draft.Options != nil {
			t.Errorf("Validate(%s) should drop stray options", typ)
		}

		missing := Draft{Type: typ, Question: "q"}
		if err := Validate(&missing, 0); err == nil {
			t.Errorf("Validate(%s) should require correct_answer", typ)
		}
	}
}

func TestValidate_FallbackDraftIsValid(t *testing.T) {
	draft := fallbackDraft()
	if err := Validate(&draft, 0); err != nil {
		t.Errorf("fallback draft must pass validation, got %v", err)
	}
}
