package llm

import "fmt"

// GenerationError reports a failed chat completion call. Status is zero for
// transport-level failures where no response was received.
type GenerationError struct {
	Status int
	Body   string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation failed with status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// EmbeddingError reports a failed embeddings call.
type EmbeddingError struct {
	Status int
	Body   string
	Err    error
}

func (e *EmbeddingError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("embedding failed with status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }
