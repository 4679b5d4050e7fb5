package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"skillbase/internal/extract"
	"skillbase/internal/knowledge"
	"skillbase/internal/llm"
	"skillbase/internal/quiz"
	"skillbase/internal/storage"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", storage.ErrNotFound), http.StatusNotFound},
		{"questions not found", quiz.ErrQuestionsNotFound, http.StatusNotFound},
		{"no content", quiz.ErrNoContent, http.StatusUnprocessableEntity},
		{"unsupported format", extract.ErrUnsupportedFormat, http.StatusUnprocessableEntity},
		{"empty content", extract.ErrEmptyContent, http.StatusUnprocessableEntity},
		{"extraction failure", &extract.ExtractionError{Format: "pdf", Err: errors.New("bad xref")}, http.StatusUnprocessableEntity},
		{"invalid structure", &quiz.StructureError{Index: 2, Reason: "no options"}, http.StatusUnprocessableEntity},
		{"sync in progress", knowledge.ErrSyncInProgress, http.StatusConflict},
		{"generation failure", &llm.GenerationError{Status: 500, Body: "boom"}, http.StatusBadGateway},
		{"embedding failure", &llm.EmbeddingError{Status: 0, Err: errors.New("dial refused")}, http.StatusBadGateway},
		{"wrapped generation failure", fmt.Errorf("generate: %w", &llm.GenerationError{Status: 429}), http.StatusBadGateway},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := mapError(tt.err, "default")
			if status != tt.wantStatus {
				t.Errorf("mapError(%v) status = %d, want %d", tt.err, status, tt.wantStatus)
			}
		})
	}
}
