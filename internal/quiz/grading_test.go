package quiz

import (
	"testing"

	"skillbase/internal/storage"
)

func choiceQuestion(typ string) *storage.QuizQuestion {
	return &storage.QuizQuestion{
		Type: typ,
		Options: []storage.QuizOption{
			{ID: 1, Text: "a", IsCorrect: true},
			{ID: 2, Text: "b", IsCorrect: typ == TypeMultipleSelect},
			{ID: 3, Text: "c"},
		},
	}
}

func TestIsAnswerCorrect_MultipleChoice(t *testing.T) {
	q := choiceQuestion(TypeMultipleChoice)

	tests := []struct {
		name string
		ids  []int64
		want bool
	}{
		{"correct option", []int64{1}, true},
		{"wrong option", []int64{3}, false},
		{"unknown option", []int64{99}, false},
		{"multiple selections", []int64{1, 2}, false},
		{"no selection", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsAnswerCorrect(q, Answer{OptionIDs: tt.ids})
			if err != nil {
				t.Fatalf("IsAnswerCorrect() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAnswerCorrect(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

func TestIsAnswerCorrect_MultipleSelect(t *testing.T) {
	q := choiceQuestion(TypeMultipleSelect)

	tests := []struct {
		name string
		ids  []int64
		want bool
	}{
		{"all correct options", []int64{1, 2}, true},
		{"order does not matter", []int64{2, 1}, true},
		{"missing one", []int64{1}, false},
		{"extra wrong option", []int64{1, 2, 3}, false},
		{"none", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsAnswerCorrect(q, Answer{OptionIDs: tt.ids})
			if err != nil {
				t.Fatalf("IsAnswerCorrect() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsAnswerCorrect(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

func TestIsAnswerCorrect_FreeText(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		metadata string
		text     string
		want     bool
		wantErr  bool
	}{
		{name: "exact match", typ: TypeTypeAnswer, metadata: `{"correct_answer":"mitochondria"}`, text: "mitochondria", want: true},
		{name: "case and whitespace insensitive", typ: TypeTypeAnswer, metadata: `{"correct_answer":"Mitochondria"}`, text: "  MITOCHONDRIA ", want: true},
		{name: "wrong answer", typ: TypeTypeAnswer, metadata: `{"correct_answer":"mitochondria"}`, text: "nucleus", want: false},
		{name: "empty submission", typ: TypeTypeAnswer, metadata: `{"correct_answer":"mitochondria"}`, text: "   ", want: false},
		{name: "true false", typ: TypeTrueFalse, metadata: `{"correct_answer":"true"}`, text: "True", want: true},
		{name: "puzzle ordering", typ: TypePuzzle, metadata: `{"correct_answer":"a, b, c"}`, text: "a, b, c", want: true},
		{name: "missing metadata answer", typ: TypeTypeAnswer, metadata: `{}`, text: "anything", wantErr: true},
		{name: "broken metadata", typ: TypeTypeAnswer, metadata: `not json`, text: "anything", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &storage.QuizQuestion{Type: tt.typ, Metadata: tt.metadata}
			got, err := IsAnswerCorrect(q, Answer{Text: tt.text})
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsAnswerCorrect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("IsAnswerCorrect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAnswerCorrect_UnknownType(t *testing.T) {
	q := &storage.QuizQuestion{Type: "ESSAY"}
	if _, err := IsAnswerCorrect(q, Answer{}); err == nil {
		t.Error("IsAnswerCorrect() should fail for unknown type")
	}
}
