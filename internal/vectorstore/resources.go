package vectorstore

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"skillbase/internal/contextutil"
)

// QdrantResourceStore implements ResourceStore on top of a QdrantStore. Each
// resource is one point whose payload carries the full text under "content"
// alongside its metadata fields.
type QdrantResourceStore struct {
	store      *QdrantStore
	collection string
}

// NewQdrantResourceStore creates a resource store bound to one collection.
func NewQdrantResourceStore(store *QdrantStore, collection string) *QdrantResourceStore {
	return &QdrantResourceStore{
		store:      store,
		collection: collection,
	}
}

// Put writes a resource point.
func (s *QdrantResourceStore) Put(ctx context.Context, res StoredResource) error {
	meta := make(map[string]any, len(res.Meta)+1)
	for k, v := range res.Meta {
		meta[k] = v
	}
	meta["content"] = res.Content

	return s.store.Upsert(ctx, s.collection, []Point{
		{ID: res.ID, Vec: res.Vector, Meta: meta},
	})
}

// GetByIDs fetches resources by point ID, preserving input order. Missing
// IDs are skipped without error.
func (s *QdrantResourceStore) GetByIDs(ctx context.Context, ids []string) ([]StoredResource, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, qdrant.NewID(id))
	}

	points, err := s.store.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.collection,
		Ids:            qdrantIDs,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get resources: %w", err)
	}

	byID := make(map[string]StoredResource, len(points))
	for _, p := range points {
		if p.Id == nil {
			continue
		}
		byID[p.Id.GetUuid()] = resourceFromPayload(p.Id.GetUuid(), p.Payload)
	}

	result := make([]StoredResource, 0, len(ids))
	for _, id := range ids {
		if res, ok := byID[id]; ok {
			result = append(result, res)
		}
	}
	return result, nil
}

// ListByCourse returns up to limit resources scoped to the course.
func (s *QdrantResourceStore) ListByCourse(ctx context.Context, courseID int64, limit int) ([]StoredResource, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if limit <= 0 {
		limit = 100
	}
	scrollLimit := uint32(limit)

	points, err := s.store.client.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: s.collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchInt("course_id", courseID),
			},
		},
		Limit:       &scrollLimit,
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to list resources", "course_id", courseID, "error", err)
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	result := make([]StoredResource, 0, len(points))
	for _, p := range points {
		if p.Id == nil {
			continue
		}
		result = append(result, resourceFromPayload(p.Id.GetUuid(), p.Payload))
	}
	return result, nil
}

// Delete removes resources by point ID.
func (s *QdrantResourceStore) Delete(ctx context.Context, ids []string) error {
	return s.store.Delete(ctx, s.collection, ids)
}

func resourceFromPayload(id string, payload map[string]*qdrant.Value) StoredResource {
	meta := convertPayloadToMap(payload)
	content, _ := meta["content"].(string)
	delete(meta, "content")
	return StoredResource{
		ID:      id,
		Content: content,
		Meta:    meta,
	}
}
