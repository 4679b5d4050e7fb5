// Package resource ingests uploaded course materials into the vector store.
package resource

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillbase/internal/contextutil"
	"skillbase/internal/extract"
	"skillbase/internal/llm"
	"skillbase/internal/vectorstore"
)

// Resource is an ingested course material.
type Resource struct {
	ID               string    `json:"id"`
	CourseID         int64     `json:"course_id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	SourceType       string    `json:"source_type"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	ContentSize      int       `json:"content_size"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks skillbase/internal/resource Service

// Service manages uploaded course resources.
type Service interface {
	// Upload extracts text from a document, normalizes it, and indexes it
	// under the course.
	Upload(ctx context.Context, courseID int64, filename string, data []byte) (Resource, error)
	// UploadText indexes pasted text under the course.
	UploadText(ctx context.Context, courseID int64, title, text string) (Resource, error)
	// ListByCourse returns resources scoped to a course.
	ListByCourse(ctx context.Context, courseID int64, limit int) ([]Resource, error)
	// Search runs a similarity query over the course's resources.
	Search(ctx context.Context, query string, courseID int64) ([]vectorstore.SearchResult, error)
	// Delete removes a resource by ID.
	Delete(ctx context.Context, id string) error
}

type service struct {
	store      vectorstore.VectorStore
	resources  vectorstore.ResourceStore
	embedder   llm.Embedder
	collection string
	threshold  float32
	limit      int
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a resource service.
func NewService(
	store vectorstore.VectorStore,
	resources vectorstore.ResourceStore,
	embedder llm.Embedder,
	collection string,
	threshold float32,
	limit int,
) Service {
	return &service{
		store:      store,
		resources:  resources,
		embedder:   embedder,
		collection: collection,
		threshold:  threshold,
		limit:      limit,
		logger:     slog.Default(),
		now:        time.Now,
	}
}

func (s *service) Upload(ctx context.Context, courseID int64, filename string, data []byte) (Resource, error) {
	logger := contextutil.LoggerFromContext(ctx)

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	text, err := extract.Extract(data, ext)
	if err != nil {
		return Resource{}, err
	}

	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	res, err := s.ingest(ctx, courseID, title, text, "document", filepath.Base(filename))
	if err != nil {
		return Resource{}, err
	}

	logger.InfoContext(ctx, "resource uploaded",
		"course_id", courseID, "filename", filename, "content_size", res.ContentSize)
	return res, nil
}

func (s *service) UploadText(ctx context.Context, courseID int64, title, text string) (Resource, error) {
	normalized, err := extract.NormalizeStrict(text)
	if err != nil {
		return Resource{}, err
	}
	if strings.TrimSpace(title) == "" {
		title = "Pasted text"
	}
	return s.ingest(ctx, courseID, title, normalized, "text", "")
}

// ingest embeds the text and writes the resource as a single vector point.
func (s *service) ingest(ctx context.Context, courseID int64, title, text, sourceType, filename string) (Resource, error) {
	vec, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		return Resource{}, err
	}

	now := s.now().UTC()
	res := Resource{
		ID:               uuid.NewString(),
		CourseID:         courseID,
		Title:            title,
		Content:          text,
		SourceType:       sourceType,
		OriginalFilename: filename,
		ContentSize:      len(text),
		UploadedAt:       now,
	}

	meta := map[string]any{
		"course_id":    courseID,
		"title":        title,
		"source_type":  sourceType,
		"content_size": res.ContentSize,
		"total_chunks": 1,
		"uploaded_at":  now.Format(time.RFC3339),
	}
	if filename != "" {
		meta["original_filename"] = filename
	}

	stored := vectorstore.StoredResource{
		ID:      res.ID,
		Vector:  vec,
		Content: text,
		Meta:    meta,
	}
	if err := s.resources.Put(ctx, stored); err != nil {
		return Resource{}, fmt.Errorf("failed to index resource: %w", err)
	}
	return res, nil
}

func (s *service) ListByCourse(ctx context.Context, courseID int64, limit int) ([]Resource, error) {
	stored, err := s.resources.ListByCourse(ctx, courseID, limit)
	if err != nil {
		return nil, err
	}
	resources := make([]Resource, 0, len(stored))
	for _, sr := range stored {
		resources = append(resources, fromStored(sr))
	}
	return resources, nil
}

func (s *service) Search(ctx context.Context, query string, courseID int64) ([]vectorstore.SearchResult, error) {
	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	filters := map[string]any{"course_id": courseID}
	return s.store.Search(ctx, s.collection, vec, s.limit, s.threshold, filters)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.resources.Delete(ctx, []string{id})
}

func fromStored(sr vectorstore.StoredResource) Resource {
	res := Resource{
		ID:      sr.ID,
		Content: sr.Content,
	}
	if v, ok := sr.Meta["course_id"]; ok {
		res.CourseID = toInt64Meta(v)
	}
	res.Title, _ = sr.Meta["title"].(string)
	res.SourceType, _ = sr.Meta["source_type"].(string)
	res.OriginalFilename, _ = sr.Meta["original_filename"].(string)
	if v, ok := sr.Meta["content_size"]; ok {
		res.ContentSize = int(toInt64Meta(v))
	}
	if raw, ok := sr.Meta["uploaded_at"].(string); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			res.UploadedAt = t
		}
	}
	return res
}

func toInt64Meta(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
