package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// CourseStore defines the interface for course and lesson operations.
type CourseStore interface {
	// CreateCourse inserts a course and sets its ID.
	CreateCourse(ctx context.Context, course *Course) error
	// GetCourse gets a course by ID. Returns ErrNotFound if missing.
	GetCourse(ctx context.Context, id int64) (*Course, error)
	// CreateLesson inserts a lesson and sets its ID.
	CreateLesson(ctx context.Context, lesson *Lesson) error
	// GetLesson gets a lesson by ID. Returns ErrNotFound if missing.
	GetLesson(ctx context.Context, id int64) (*Lesson, error)
	// ListLessons returns the lessons of a course ordered by position.
	// With publishedOnly set, unpublished lessons are excluded.
	ListLessons(ctx context.Context, courseID int64, publishedOnly bool) ([]Lesson, error)
	// UpdateLessonContent replaces the lesson body.
	UpdateLessonContent(ctx context.Context, lessonID int64, content string) error
}

// CourseRepo provides methods for course and lesson operations.
// It implements the CourseStore interface.
type CourseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a new CourseRepo.
func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

// CreateCourse inserts a course and sets its ID.
func (r *CourseRepo) CreateCourse(ctx context.Context, course *Course) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO courses (title, description) VALUES (?, ?)",
		course.Title, course.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}
	course.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read course id: %w", err)
	}
	return nil
}

// GetCourse gets a course by ID. Returns ErrNotFound if missing.
func (r *CourseRepo) GetCourse(ctx context.Context, id int64) (*Course, error) {
	var course Course
	var createdAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, description, created_at FROM courses WHERE id = ?",
		id,
	).Scan(&course.ID, &course.Title, &course.Description, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query course: %w", err)
	}

	course.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateLesson inserts a lesson and sets its ID.
func (r *CourseRepo) CreateLesson(ctx context.Context, lesson *Lesson) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO lessons (course_id, title, content, published, position) VALUES (?, ?, ?, ?, ?)",
		lesson.CourseID, lesson.Title, lesson.Content, lesson.Published, lesson.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lesson: %w", err)
	}
	lesson.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read lesson id: %w", err)
	}
	return nil
}

// GetLesson gets a lesson by ID. Returns ErrNotFound if missing.
func (r *CourseRepo) GetLesson(ctx context.Context, id int64) (*Lesson, error) {
	var lesson Lesson
	var createdAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, course_id, title, content, published, position, created_at FROM lessons WHERE id = ?",
		id,
	).Scan(&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content, &lesson.Published, &lesson.Position, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson: %w", err)
	}

	lesson.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListLessons returns the lessons of a course ordered by position.
func (r *CourseRepo) ListLessons(ctx context.Context, courseID int64, publishedOnly bool) ([]Lesson, error) {
	query := "SELECT id, course_id, title, content, published, position, created_at FROM lessons WHERE course_id = ?"
	if publishedOnly {
		query += " AND published = 1"
	}
	query += " ORDER BY position, id"

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var lessons []Lesson
	for rows.Next() {
		var lesson Lesson
		var createdAtStr string
		if err := rows.Scan(&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Content, &lesson.Published, &lesson.Position, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lesson.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

// UpdateLessonContent replaces the lesson body.
func (r *CourseRepo) UpdateLessonContent(ctx context.Context, lessonID int64, content string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE lessons SET content = ? WHERE id = ?",
		content, lessonID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lesson content: %w", err)
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

// parseTimestamp handles the DATETIME string formats SQLite emits.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
}
