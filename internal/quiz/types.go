// Package quiz generates, repairs, validates, persists, and grades quiz
// questions produced by a generative model.
package quiz

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Question types.
const (
	TypeMultipleChoice = "MULTIPLE_CHOICE"
	TypeMultipleSelect = "MULTIPLE_SELECT"
	TypeTrueFalse      = "TRUE_FALSE"
	TypeTypeAnswer     = "TYPE_ANSWER"
	TypePuzzle         = "PUZZLE"
)

// KnownTypes lists every supported question type.
var KnownTypes = []string{
	TypeMultipleChoice,
	TypeMultipleSelect,
	TypeTrueFalse,
	TypeTypeAnswer,
	TypePuzzle,
}

func isKnownType(t string) bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DraftOption is one answer option of a draft question.
type DraftOption struct {
	Text      string
	IsCorrect bool
}

// Draft is a question as decoded from model output, before validation. Its
// decoding is deliberately tolerant: models emit the correct answer under
// several different keys and mix types freely.
type Draft struct {
	Type          string
	Question      string
	Explanation   string
	Difficulty    string
	CorrectAnswer string
	Options       []DraftOption
	Note          string
}

// UnmarshalJSON decodes a draft from one model-emitted question object.
func (d *Draft) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Type = strings.TrimSpace(stringField(raw, "type"))
	d.Question = strings.TrimSpace(stringField(raw, "question"))
	d.Explanation = strings.TrimSpace(stringField(raw, "explanation"))
	d.Difficulty = strings.TrimSpace(stringField(raw, "difficulty"))

	// The correct answer arrives as correct_answer, answer, or is_correct
	// depending on the model's mood.
	for _, key := range []string{"correct_answer", "answer", "is_correct"} {
		if v, ok := raw[key]; ok {
			d.CorrectAnswer = coerceString(v)
			break
		}
	}

	if optsRaw, ok := raw["options"]; ok {
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(optsRaw, &items); err == nil {
			for _, item := range items {
				opt := DraftOption{
					Text: strings.TrimSpace(stringField(item, "text")),
				}
				if opt.Text == "" {
					opt.Text = strings.TrimSpace(stringField(item, "option_text"))
				}
				for _, key := range []string{"is_correct", "correct", "isCorrect"} {
					if v, ok := item[key]; ok {
						opt.IsCorrect = coerceBool(v)
						break
					}
				}
				d.Options = append(d.Options, opt)
			}
		} else {
			// Bare string options carry no correctness flag.
			var texts []string
			if err := json.Unmarshal(optsRaw, &texts); err == nil {
				for _, text := range texts {
					d.Options = append(d.Options, DraftOption{Text: strings.TrimSpace(text)})
				}
			}
		}
	}

	return nil
}

func stringField(raw map[string]json.RawMessage, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	return coerceString(v)
}

// coerceString renders a JSON scalar as a string.
func coerceString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func coerceBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.ToLower(strings.TrimSpace(s))
		return s == "true" || s == "1" || s == "yes"
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	return false
}
