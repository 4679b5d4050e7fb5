package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoContent is returned when neither lessons, course metadata, nor
	// reference resources yield any usable text to generate from.
	ErrNoContent = errors.New("no content available for quiz generation")

	// ErrQuestionsNotFound is returned when an assignment resolves to zero
	// existing questions.
	ErrQuestionsNotFound = errors.New("quiz questions not found")
)

// StructureError reports a question object that failed domain validation.
// Index is the question's position within the model output.
type StructureError struct {
	Index  int
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("invalid quiz structure at question %d: %s", e.Index, e.Reason)
}
