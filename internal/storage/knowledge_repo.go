package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// KnowledgeStore defines the interface for knowledge base operations.
type KnowledgeStore interface {
	// Create inserts an entry and sets its ID.
	Create(ctx context.Context, entry *KnowledgeEntry) error
	// Get gets an entry by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id int64) (*KnowledgeEntry, error)
	// ListAll returns every entry, oldest first.
	ListAll(ctx context.Context) ([]KnowledgeEntry, error)
	// Delete removes an entry. Returns ErrNotFound if missing.
	Delete(ctx context.Context, id int64) error
}

// KnowledgeRepo provides methods for knowledge base operations.
// It implements the KnowledgeStore interface.
type KnowledgeRepo struct {
	db *sql.DB
}

// NewKnowledgeRepo creates a new KnowledgeRepo.
func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

// Create inserts an entry and sets its ID.
func (r *KnowledgeRepo) Create(ctx context.Context, entry *KnowledgeEntry) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO knowledge_base (course_id, title, content, category) VALUES (?, ?, ?, ?)",
		entry.CourseID, entry.Title, entry.Content, entry.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert knowledge entry: %w", err)
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read knowledge entry id: %w", err)
	}
	return nil
}

// Get gets an entry by ID. Returns ErrNotFound if missing.
func (r *KnowledgeRepo) Get(ctx context.Context, id int64) (*KnowledgeEntry, error) {
	var entry KnowledgeEntry
	var updatedAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, course_id, title, content, category, updated_at FROM knowledge_base WHERE id = ?",
		id,
	).Scan(&entry.ID, &entry.CourseID, &entry.Title, &entry.Content, &entry.Category, &updatedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge entry: %w", err)
	}

	entry.UpdatedAt, err = parseTimestamp(updatedAtStr)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListAll returns every entry, oldest first.
func (r *KnowledgeRepo) ListAll(ctx context.Context) ([]KnowledgeEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, course_id, title, content, category, updated_at FROM knowledge_base ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []KnowledgeEntry
	for rows.Next() {
		var entry KnowledgeEntry
		var updatedAtStr string
		if err := rows.Scan(&entry.ID, &entry.CourseID, &entry.Title, &entry.Content, &entry.Category, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge entry: %w", err)
		}
		entry.UpdatedAt, err = parseTimestamp(updatedAtStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes an entry. Returns ErrNotFound if missing.
func (r *KnowledgeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM knowledge_base WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete knowledge entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
