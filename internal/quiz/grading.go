package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillbase/internal/storage"
)

// Answer is a submitted answer: free text for TRUE_FALSE, TYPE_ANSWER and
// PUZZLE questions, selected option IDs for the choice types. Exactly one of
// the two fields is meaningful per question type.
type Answer struct {
	Text      string
	OptionIDs []int64
}

// IsAnswerCorrect grades a submitted answer against a stored question.
func IsAnswerCorrect(q *storage.QuizQuestion, ans Answer) (bool, error) {
	switch q.Type {
	case TypeMultipleChoice:
		if len(ans.OptionIDs) != 1 {
			return false, nil
		}
		for _, opt := range q.Options {
			if opt.ID == ans.OptionIDs[0] {
				return opt.IsCorrect, nil
			}
		}
		return false, nil

	case TypeMultipleSelect:
		correct := make(map[int64]bool)
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct[opt.ID] = true
			}
		}
		if len(ans.OptionIDs) != len(correct) {
			return false, nil
		}
		for _, id := range ans.OptionIDs {
			if !correct[id] {
				return false, nil
			}
		}
		return true, nil

	case TypeTrueFalse, TypeTypeAnswer, TypePuzzle:
		want, err := correctAnswerFromMetadata(q.Metadata)
		if err != nil {
			return false, err
		}
		got := strings.ToLower(strings.TrimSpace(ans.Text))
		return got != "" && got == strings.ToLower(strings.TrimSpace(want)), nil

	default:
		return false, fmt.Errorf("unknown question type %q", q.Type)
	}
}

func correctAnswerFromMetadata(metadata string) (string, error) {
	var meta struct {
		CorrectAnswer string `json:"correct_answer"`
	}
	if err := json.Unmarshal([]byte(metadata), &meta); err != nil {
		return "", fmt.Errorf("failed to parse question metadata: %w", err)
	}
	if meta.CorrectAnswer == "" {
		return "", fmt.Errorf("question metadata has no correct_answer")
	}
	return meta.CorrectAnswer, nil
}
