package handlers

import (
	"net/http"
	"strings"

	"skillbase/internal/rag"
)

// RAGHandler serves retrieval-augmented content generation.
type RAGHandler struct {
	engine rag.Engine
}

// NewRAGHandler creates a new RAGHandler.
func NewRAGHandler(engine rag.Engine) *RAGHandler {
	return &RAGHandler{engine: engine}
}

// GenerateContentRequest is the payload for lesson content generation.
type GenerateContentRequest struct {
	Title              string            `json:"title"`
	CourseID           int64             `json:"course_id"`
	ReferenceResources []string          `json:"reference_resources,omitempty"`
	Extra              map[string]string `json:"extra,omitempty"`
}

// GenerateContent handles POST /api/rag/generate-content.
func (h *RAGHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "title is required"
	}
	if req.CourseID <= 0 {
		fields["course_id"] = "course_id must be a positive integer"
	}
	if len(fields) > 0 {
		writeValidation(w, "Invalid generation request", fields)
		return
	}

	result, err := h.engine.GenerateLessonContent(ctx, req.Title, req.CourseID, rag.Options{
		ReferenceResources: req.ReferenceResources,
		Extra:              req.Extra,
	})
	if err != nil {
		writeError(ctx, w, err, "Failed to generate lesson content")
		return
	}

	writeData(w, http.StatusOK, result)
}
