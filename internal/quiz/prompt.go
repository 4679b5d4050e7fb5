package quiz

import (
	"fmt"
	"strings"
)

// typeExamples anchors the model's output shape with one canonical object
// per question type. The examples are embedded verbatim in the prompt.
var typeExamples = map[string]string{
	TypeMultipleChoice: `{
  "type": "MULTIPLE_CHOICE",
  "question": "Which organelle produces most of a cell's ATP?",
  "difficulty": "medium",
  "explanation": "Mitochondria run cellular respiration, which produces ATP.",
  "options": [
    {"text": "Mitochondria", "is_correct": true},
    {"text": "Nucleus", "is_correct": false},
    {"text": "Ribosome", "is_correct": false},
    {"text": "Golgi apparatus", "is_correct": false}
  ]
}`,
	TypeMultipleSelect: `{
  "type": "MULTIPLE_SELECT",
  "question": "Which of the following are found in plant cells?",
  "difficulty": "medium",
  "explanation": "Plant cells have chloroplasts and a cell wall; animal cells have neither.",
  "options": [
    {"text": "Chloroplast", "is_correct": true},
    {"text": "Cell wall", "is_correct": true},
    {"text": "Centriole", "is_correct": false},
    {"text": "Lysosome", "is_correct": false}
  ]
}`,
	TypeTrueFalse: `{
  "type": "TRUE_FALSE",
  "question": "Water boils at 100 degrees Celsius at sea level.",
  "difficulty": "easy",
  "explanation": "At standard atmospheric pressure water boils at 100C.",
  "correct_answer": "true"
}`,
	TypeTypeAnswer: `{
  "type": "TYPE_ANSWER",
  "question": "What is the name of the process plants use to convert light into chemical energy?",
  "difficulty": "medium",
  "explanation": "Photosynthesis converts light, water and CO2 into glucose and oxygen.",
  "correct_answer": "photosynthesis"
}`,
	TypePuzzle: `{
  "type": "PUZZLE",
  "question": "Arrange the stages of mitosis in order: metaphase, prophase, telophase, anaphase",
  "difficulty": "hard",
  "explanation": "Mitosis proceeds prophase, metaphase, anaphase, telophase.",
  "correct_answer": "prophase, metaphase, anaphase, telophase"
}`,
}

// BuildPrompt assembles the primary generation prompt: strict output rules,
// one worked example per requested type, and the source material.
func BuildPrompt(content string, types []string, count int, custom string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d quiz questions based on the course material below.\n\n", count)
	b.WriteString("STRICT OUTPUT REQUIREMENTS:\n")
	b.WriteString("- Respond with ONLY a JSON array. No prose, no markdown, no code fences.\n")
	fmt.Fprintf(&b, "- The array must contain exactly %d question objects.\n", count)
	fmt.Fprintf(&b, "- Use only these question types: %s.\n", strings.Join(types, ", "))
	b.WriteString("- Every object needs \"type\", \"question\", \"difficulty\" and \"explanation\" fields.\n")
	b.WriteString("- MULTIPLE_CHOICE needs exactly 1 correct option; MULTIPLE_SELECT needs at least 2.\n")
	b.WriteString("- TRUE_FALSE, TYPE_ANSWER and PUZZLE carry the answer in \"correct_answer\".\n\n")

	b.WriteString("EXAMPLE OBJECTS (match these shapes exactly):\n")
	for _, t := range types {
		if example, ok := typeExamples[t]; ok {
			b.WriteString(example)
			b.WriteString("\n")
		}
	}

	if custom != "" {
		b.WriteString("\nADDITIONAL REQUIREMENTS:\n")
		b.WriteString(custom)
		b.WriteString("\n")
	}

	b.WriteString("\nCOURSE MATERIAL:\n")
	b.WriteString(content)
	return b.String()
}

// BuildSimplePrompt is the retry prompt: fewer instructions, smaller shape,
// used when the primary prompt's output failed validation entirely.
func BuildSimplePrompt(content string, types []string, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %d quiz questions from this material as a JSON array.\n", count)
	fmt.Fprintf(&b, "Allowed types: %s.\n", strings.Join(types, ", "))
	b.WriteString(`Each object: {"type", "question", "explanation", "options" or "correct_answer"}.` + "\n")
	b.WriteString("Return the JSON array only.\n\n")
	b.WriteString(content)
	return b.String()
}
