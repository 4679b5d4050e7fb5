// Package knowledge manages the curated knowledge base and keeps its
// vector index in step with the relational rows.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"skillbase/internal/contextutil"
	"skillbase/internal/llm"
	"skillbase/internal/storage"
	"skillbase/internal/vectorstore"
)

// ErrSyncInProgress is returned when a sync is requested while another
// sync is still running.
var ErrSyncInProgress = errors.New("knowledge sync already in progress")

// pointNamespace seeds deterministic point IDs. The same entry always maps
// to the same point, which is what makes sync idempotent and resumable.
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// SyncStats summarizes one sync run.
type SyncStats struct {
	Total   int `json:"total"`
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_service.go -package=mocks skillbase/internal/knowledge Service

// Service maintains knowledge entries and their vector index.
type Service interface {
	// Add persists an entry and indexes it immediately.
	Add(ctx context.Context, entry *storage.KnowledgeEntry) error
	// Delete removes an entry and its vector point.
	Delete(ctx context.Context, id int64) error
	// List returns all entries, oldest first.
	List(ctx context.Context) ([]storage.KnowledgeEntry, error)
	// Sync indexes every entry that is missing from the vector store.
	// Already indexed entries are skipped, so an interrupted run can be
	// resumed by running Sync again.
	Sync(ctx context.Context) (SyncStats, error)
	// Search runs a similarity query over the knowledge base, optionally
	// scoped to a course. Entries with course ID 0 match every course.
	Search(ctx context.Context, query string, courseID int64) ([]vectorstore.SearchResult, error)
}

type service struct {
	entries    storage.KnowledgeStore
	embedder   llm.Embedder
	store      vectorstore.VectorStore
	collection string
	threshold  float32
	limit      int
	logger     *slog.Logger

	syncMu sync.Mutex
}

// NewService creates a knowledge service.
func NewService(
	entries storage.KnowledgeStore,
	embedder llm.Embedder,
	store vectorstore.VectorStore,
	collection string,
	threshold float32,
	limit int,
) Service {
	return &service{
		entries:    entries,
		embedder:   embedder,
		store:      store,
		collection: collection,
		threshold:  threshold,
		limit:      limit,
		logger:     slog.Default(),
	}
}

// PointID returns the deterministic vector point ID for a knowledge entry.
func PointID(entryID int64) string {
	return uuid.NewSHA1(pointNamespace, []byte(fmt.Sprintf("knowledge:%d", entryID))).String()
}

func (s *service) Add(ctx context.Context, entry *storage.KnowledgeEntry) error {
	if err := s.entries.Create(ctx, entry); err != nil {
		return err
	}
	if err := s.index(ctx, *entry); err != nil {
		return fmt.Errorf("entry %d stored but not indexed, run sync to repair: %w", entry.ID, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, s.collection, []string{PointID(id)}); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to delete knowledge vector",
			"entry_id", id, "error", err)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]storage.KnowledgeEntry, error) {
	return s.entries.ListAll(ctx)
}

func (s *service) Sync(ctx context.Context) (SyncStats, error) {
	if !s.syncMu.TryLock() {
		return SyncStats{}, ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	logger := contextutil.LoggerFromContext(ctx)

	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to list knowledge entries: %w", err)
	}

	stats := SyncStats{Total: len(entries)}
	if len(entries) == 0 {
		return stats, nil
	}

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = PointID(entry.ID)
	}
	indexed, err := s.store.Exists(ctx, s.collection, ids)
	if err != nil {
		return SyncStats{}, fmt.Errorf("failed to check indexed entries: %w", err)
	}

	for i, entry := range entries {
		if indexed[ids[i]] {
			stats.Skipped++
			continue
		}
		if err := s.index(ctx, entry); err != nil {
			logger.WarnContext(ctx, "failed to sync knowledge entry, skipping",
				"entry_id", entry.ID, "title", entry.Title, "error", err)
			stats.Failed++
			continue
		}
		stats.Synced++
	}

	logger.InfoContext(ctx, "knowledge sync finished",
		"total", stats.Total, "synced", stats.Synced, "skipped", stats.Skipped, "failed", stats.Failed)
	return stats, nil
}

func (s *service) Search(ctx context.Context, query string, courseID int64) ([]vectorstore.SearchResult, error) {
	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	filters := map[string]any{"course_id": courseID}
	return s.store.Search(ctx, s.collection, vec, s.limit, s.threshold, filters)
}

// index embeds one entry and upserts its point.
func (s *service) index(ctx context.Context, entry storage.KnowledgeEntry) error {
	vec, err := s.embedder.EmbedText(ctx, entry.Title+"\n\n"+entry.Content)
	if err != nil {
		return err
	}
	point := vectorstore.Point{
		ID:  PointID(entry.ID),
		Vec: vec,
		Meta: map[string]any{
			"entry_id":  entry.ID,
			"course_id": entry.CourseID,
			"title":     entry.Title,
			"content":   entry.Content,
			"category":  entry.Category,
		},
	}
	return s.store.Upsert(ctx, s.collection, []vectorstore.Point{point})
}
