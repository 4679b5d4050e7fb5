package quiz

import (
	"fmt"
	"strings"
)

// Validate checks one draft against the per-type domain rules and normalizes
// it in place. index tags the question's position in the model output.
func Validate(d *Draft, index int) error {
	if d.Type == "" {
		return &StructureError{Index: index, Reason: "missing type"}
	}
	if !isKnownType(d.Type) {
		return &StructureError{Index: index, Reason: fmt.Sprintf("unknown type %q", d.Type)}
	}
	if d.Question == "" {
		return &StructureError{Index: index, Reason: "missing question text"}
	}

	switch d.Type {
	case TypeMultipleChoice, TypeMultipleSelect:
		return validateChoice(d, index)
	case TypeTrueFalse:
		return validateTrueFalse(d, index)
	case TypeTypeAnswer, TypePuzzle:
		if strings.TrimSpace(d.CorrectAnswer) == "" {
			return &StructureError{Index: index, Reason: "missing correct_answer"}
		}
		d.Options = nil
		return nil
	}
	return nil
}

func validateChoice(d *Draft, index int) error {
	if len(d.Options) < 2 {
		return &StructureError{Index: index, Reason: "needs at least 2 options"}
	}

	correct := 0
	for i, opt := range d.Options {
		if opt.Text == "" {
			return &StructureError{Index: index, Reason: fmt.Sprintf("option %d has no text", i)}
		}
		if opt.IsCorrect {
			correct++
		}
	}

	switch d.Type {
	case TypeMultipleChoice:
		if correct != 1 {
			return &StructureError{Index: index, Reason: fmt.Sprintf("needs exactly 1 correct option, has %d", correct)}
		}
	case TypeMultipleSelect:
		if correct < 2 {
			return &StructureError{Index: index, Reason: fmt.Sprintf("needs at least 2 correct options, has %d", correct)}
		}
	}
	return nil
}

// validateTrueFalse normalizes the answer to "true" or "false" and
// synthesizes the canonical True/False option pair.
func validateTrueFalse(d *Draft, index int) error {
	answer := strings.ToLower(strings.TrimSpace(d.CorrectAnswer))
	switch answer {
	case "true", "false":
	case "":
		return &StructureError{Index: index, Reason: "missing answer"}
	default:
		return &StructureError{Index: index, Reason: fmt.Sprintf("answer %q is not true or false", d.CorrectAnswer)}
	}

	d.CorrectAnswer = answer
	d.Options = []DraftOption{
		{Text: "True", IsCorrect: answer == "true"},
		{Text: "False", IsCorrect: answer == "false"},
	}
	return nil
}
