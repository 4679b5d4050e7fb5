package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"skillbase/internal/resource"
)

const (
	// maxUploadBytes caps uploaded document size.
	maxUploadBytes = 10 << 20
	// maxTextChars caps pasted text length.
	maxTextChars = 50_000
)

// ResourceHandler serves course resource ingestion and lookup.
type ResourceHandler struct {
	svc resource.Service
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(svc resource.Service) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

// UploadTextRequest is the JSON payload for pasted-text resources.
type UploadTextRequest struct {
	CourseID int64  `json:"course_id"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text"`
}

// Create handles POST /api/resources. Multipart requests carry a document
// file, JSON requests carry pasted text.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.createFromFile(w, r)
		return
	}
	h.createFromText(w, r)
}

func (h *ResourceHandler) createFromFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeValidation(w, "Invalid multipart request or file too large", map[string]string{
			"file": "file must be at most 10MB",
		})
		return
	}

	courseID, err := strconv.ParseInt(r.FormValue("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		writeValidation(w, "Invalid upload request", map[string]string{
			"course_id": "course_id must be a positive integer",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeValidation(w, "Invalid upload request", map[string]string{
			"file": "file is required",
		})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(ctx, w, err, "Failed to read uploaded file")
		return
	}

	res, err := h.svc.Upload(ctx, courseID, header.Filename, data)
	if err != nil {
		writeError(ctx, w, err, "Failed to ingest resource")
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (h *ResourceHandler) createFromText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UploadTextRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := map[string]string{}
	if req.CourseID <= 0 {
		fields["course_id"] = "course_id must be a positive integer"
	}
	if strings.TrimSpace(req.Text) == "" {
		fields["text"] = "text is required"
	}
	if len(req.Text) > maxTextChars {
		fields["text"] = "text must be at most 50000 characters"
	}
	if len(fields) > 0 {
		writeValidation(w, "Invalid upload request", fields)
		return
	}

	res, err := h.svc.UploadText(ctx, req.CourseID, req.Title, req.Text)
	if err != nil {
		writeError(ctx, w, err, "Failed to ingest resource")
		return
	}
	writeData(w, http.StatusCreated, res)
}

// List handles GET /api/courses/{courseID}/resources.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		writeValidation(w, "Invalid course ID", nil)
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	resources, err := h.svc.ListByCourse(ctx, courseID, limit)
	if err != nil {
		writeError(ctx, w, err, "Failed to list resources")
		return
	}
	writeData(w, http.StatusOK, resources)
}

// SearchResourcesRequest is the payload for resource similarity search.
type SearchResourcesRequest struct {
	Query    string `json:"query"`
	CourseID int64  `json:"course_id"`
}

// Search handles POST /api/resources/search.
func (h *ResourceHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SearchResourcesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeValidation(w, "Invalid search request", map[string]string{"query": "query is required"})
		return
	}

	results, err := h.svc.Search(ctx, req.Query, req.CourseID)
	if err != nil {
		writeError(ctx, w, err, "Failed to search resources")
		return
	}
	writeData(w, http.StatusOK, results)
}

// Delete handles DELETE /api/resources/{id}.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeValidation(w, "Invalid resource ID", nil)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeError(ctx, w, err, "Failed to delete resource")
		return
	}
	writeMessage(w, http.StatusOK, "Resource deleted", nil)
}
