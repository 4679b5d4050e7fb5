// Package handlers implements the HTTP API surface.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"skillbase/internal/contextutil"
	"skillbase/internal/extract"
	"skillbase/internal/knowledge"
	"skillbase/internal/llm"
	"skillbase/internal/quiz"
	"skillbase/internal/storage"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Data    any               `json:"data,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// writeValidation reports field-level validation failures as 400.
func writeValidation(w http.ResponseWriter, message string, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message, Errors: fields})
}

// writeError maps a domain error to an HTTP status and logs it.
func writeError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	status, message := mapError(err, defaultMsg)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", "status", status, "error", err)
	} else {
		logger.WarnContext(ctx, "request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// mapError translates the domain error taxonomy to HTTP semantics. Upstream
// model failures surface as 502 so callers can distinguish them from bugs.
func mapError(err error, defaultMsg string) (int, string) {
	var (
		genErr    *llm.GenerationError
		embErr    *llm.EmbeddingError
		extErr    *extract.ExtractionError
		structErr *quiz.StructureError
	)

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "Record not found"
	case errors.Is(err, quiz.ErrQuestionsNotFound):
		return http.StatusNotFound, "No matching quiz questions found"
	case errors.Is(err, quiz.ErrNoContent):
		return http.StatusUnprocessableEntity, "No content available to generate from"
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity, "Unsupported file format, expected pdf, docx or txt"
	case errors.Is(err, extract.ErrEmptyContent):
		return http.StatusUnprocessableEntity, "Document contains no extractable text"
	case errors.As(err, &extErr):
		return http.StatusUnprocessableEntity, "Failed to extract text from document"
	case errors.As(err, &structErr):
		return http.StatusUnprocessableEntity, "Model returned an invalid quiz structure"
	case errors.Is(err, knowledge.ErrSyncInProgress):
		return http.StatusConflict, "Knowledge sync already in progress"
	case errors.As(err, &genErr), errors.As(err, &embErr):
		return http.StatusBadGateway, "Upstream model service failed"
	default:
		return http.StatusInternalServerError, defaultMsg
	}
}

func writeJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeValidation(w, "Invalid request body", nil)
		return false
	}
	return true
}
