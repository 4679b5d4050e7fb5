package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"skillbase/internal/knowledge"
	"skillbase/internal/storage"
)

// KnowledgeHandler serves knowledge base management endpoints.
type KnowledgeHandler struct {
	svc knowledge.Service
}

// NewKnowledgeHandler creates a new KnowledgeHandler.
func NewKnowledgeHandler(svc knowledge.Service) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

// AddKnowledgeRequest is the payload for adding a knowledge entry.
// CourseID 0 shares the entry across all courses.
type AddKnowledgeRequest struct {
	CourseID int64  `json:"course_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// KnowledgeEntryResponse is one knowledge entry in API responses.
type KnowledgeEntryResponse struct {
	ID       int64  `json:"id"`
	CourseID int64  `json:"course_id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

// Add handles POST /api/rag/knowledge.
func (h *KnowledgeHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddKnowledgeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		fields["content"] = "content is required"
	}
	if req.CourseID < 0 {
		fields["course_id"] = "course_id must not be negative"
	}
	if len(fields) > 0 {
		writeValidation(w, "Invalid knowledge entry", fields)
		return
	}

	entry := &storage.KnowledgeEntry{
		CourseID: req.CourseID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}
	if err := h.svc.Add(ctx, entry); err != nil {
		writeError(ctx, w, err, "Failed to add knowledge entry")
		return
	}

	writeData(w, http.StatusCreated, KnowledgeEntryResponse{
		ID:       entry.ID,
		CourseID: entry.CourseID,
		Title:    entry.Title,
		Category: entry.Category,
	})
}

// List handles GET /api/rag/knowledge.
func (h *KnowledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.svc.List(ctx)
	if err != nil {
		writeError(ctx, w, err, "Failed to list knowledge entries")
		return
	}

	out := make([]KnowledgeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, KnowledgeEntryResponse{
			ID:       entry.ID,
			CourseID: entry.CourseID,
			Title:    entry.Title,
			Category: entry.Category,
		})
	}
	writeData(w, http.StatusOK, out)
}

// SearchKnowledgeRequest is the payload for knowledge similarity search.
type SearchKnowledgeRequest struct {
	Query    string `json:"query"`
	CourseID int64  `json:"course_id"`
}

// Search handles POST /api/rag/knowledge/search.
func (h *KnowledgeHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SearchKnowledgeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeValidation(w, "Invalid search request", map[string]string{"query": "query is required"})
		return
	}

	results, err := h.svc.Search(ctx, req.Query, req.CourseID)
	if err != nil {
		writeError(ctx, w, err, "Failed to search knowledge base")
		return
	}
	writeData(w, http.StatusOK, results)
}

// Sync handles POST /api/rag/knowledge/sync.
func (h *KnowledgeHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.svc.Sync(ctx)
	if err != nil {
		writeError(ctx, w, err, "Failed to sync knowledge base")
		return
	}
	writeMessage(w, http.StatusOK, "Knowledge base synced", stats)
}

// Delete handles DELETE /api/rag/knowledge/{id}.
func (h *KnowledgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeValidation(w, "Invalid knowledge entry ID", nil)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeError(ctx, w, err, "Failed to delete knowledge entry")
		return
	}
	writeMessage(w, http.StatusOK, "Knowledge entry deleted", nil)
}
