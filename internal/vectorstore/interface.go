package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks skillbase/internal/vectorstore VectorStore,ResourceStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// EnsureCollection creates the collection if missing and validates the
	// vector size if it exists.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// CollectionExists reports whether the collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search. Results scoring below threshold
	// are excluded. Filters support "course_id" (matches the given course or
	// the global scope 0) and "lesson_id" (exact match).
	Search(ctx context.Context, collection string, query []float32, k int, threshold float32, filters map[string]any) ([]SearchResult, error)

	// Exists reports which of the given point IDs are present.
	Exists(ctx context.Context, collection string, ids []string) (map[string]bool, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error
}

// StoredResource is a course resource held as a single vector point with its
// full text and metadata in the payload.
type StoredResource struct {
	ID      string
	Vector  []float32
	Content string
	Meta    map[string]any
}

// ResourceStore defines payload-level access to the resource collection.
type ResourceStore interface {
	// Put writes a resource point.
	Put(ctx context.Context, res StoredResource) error

	// GetByIDs fetches resources by point ID, preserving input order.
	// Missing IDs are skipped without error.
	GetByIDs(ctx context.Context, ids []string) ([]StoredResource, error)

	// ListByCourse returns up to limit resources scoped to the course.
	ListByCourse(ctx context.Context, courseID int64, limit int) ([]StoredResource, error)

	// Delete removes resources by point ID.
	Delete(ctx context.Context, ids []string) error
}
