package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// QuizStore defines the interface for quiz persistence.
type QuizStore interface {
	// CreateQuestion inserts a question together with its options in one
	// transaction. IDs are set on the question and its options.
	CreateQuestion(ctx context.Context, q *QuizQuestion) error
	// GetWithOptions gets a question and its options by ID.
	GetWithOptions(ctx context.Context, id int64) (*QuizQuestion, error)
	// ListByLesson returns the questions assigned to a lesson ordered by
	// position, options included.
	ListByLesson(ctx context.Context, lessonID int64) ([]QuizQuestion, error)
	// ListByCourse returns every question of a course, options included.
	ListByCourse(ctx context.Context, courseID int64) ([]QuizQuestion, error)
	// AssignToLesson binds the given questions to a lesson, positions
	// numbered 1..N in the given order. Unknown IDs are skipped; the count
	// of assigned questions is returned. If none of the IDs exist the
	// assignment fails with ErrNotFound.
	AssignToLesson(ctx context.Context, lessonID int64, questionIDs []int64) (int, error)
	// DeleteQuestion removes a question; its options cascade.
	DeleteQuestion(ctx context.Context, id int64) error
	// CountByType returns question counts per type for a course.
	CountByType(ctx context.Context, courseID int64) (map[string]int, error)
	// CreateAttempt starts an attempt for a lesson and sets its ID.
	CreateAttempt(ctx context.Context, attempt *QuizAttempt) error
	// RecordAnswer stores one answer of an attempt and sets its ID.
	RecordAnswer(ctx context.Context, answer *QuizAnswer) error
	// AttemptScore computes the fraction of correct answers of an attempt.
	// An attempt with no recorded answers scores 0.
	AttemptScore(ctx context.Context, attemptID int64) (float64, error)
	// CompleteAttempt marks an attempt finished with its final score.
	CompleteAttempt(ctx context.Context, attemptID int64, score float64) error
}

// QuizRepo provides methods for quiz persistence.
// It implements the QuizStore interface.
type QuizRepo struct {
	db *sql.DB
}

// NewQuizRepo creates a new QuizRepo.
func NewQuizRepo(db *sql.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CreateQuestion inserts a question together with its options in one
// transaction. A failure on any option rolls back the whole question.
func (r *QuizRepo) CreateQuestion(ctx context.Context, q *QuizQuestion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	metadata := q.Metadata
	if metadata == "" {
		metadata = "{}"
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO quiz_questions (course_id, lesson_id, type, question, explanation, metadata, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.CourseID, q.LessonID, q.Type, q.Question, q.Explanation, metadata, q.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	q.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read question id: %w", err)
	}

	for i := range q.Options {
		opt := &q.Options[i]
		opt.QuestionID = q.ID
		if opt.Position == 0 {
			opt.Position = i + 1
		}
		optRes, err := tx.ExecContext(ctx,
			"INSERT INTO quiz_options (question_id, text, is_correct, position) VALUES (?, ?, ?, ?)",
			opt.QuestionID, opt.Text, opt.IsCorrect, opt.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
		opt.ID, err = optRes.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read option id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit question: %w", err)
	}
	return nil
}

// GetWithOptions gets a question and its options by ID.
func (r *QuizRepo) GetWithOptions(ctx context.Context, id int64) (*QuizQuestion, error) {
	var q QuizQuestion
	var createdAtStr string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, course_id, lesson_id, type, question, explanation, metadata, position, created_at
		 FROM quiz_questions WHERE id = ?`,
		id,
	).Scan(&q.ID, &q.CourseID, &q.LessonID, &q.Type, &q.Question, &q.Explanation, &q.Metadata, &q.Position, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query question: %w", err)
	}

	q.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}

	q.Options, err = r.optionsFor(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByLesson returns the questions assigned to a lesson ordered by
// position, options included.
func (r *QuizRepo) ListByLesson(ctx context.Context, lessonID int64) ([]QuizQuestion, error) {
	return r.list(ctx,
		`SELECT id, course_id, lesson_id, type, question, explanation, metadata, position, created_at
		 FROM quiz_questions WHERE lesson_id = ? ORDER BY position, id`,
		lessonID,
	)
}

// ListByCourse returns every question of a course, options included.
func (r *QuizRepo) ListByCourse(ctx context.Context, courseID int64) ([]QuizQuestion, error) {
	return r.list(ctx,
		`SELECT id, course_id, lesson_id, type, question, explanation, metadata, position, created_at
		 FROM quiz_questions WHERE course_id = ? ORDER BY id`,
		courseID,
	)
}

func (r *QuizRepo) list(ctx context.Context, query string, arg any) ([]QuizQuestion, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var questions []QuizQuestion
	for rows.Next() {
		var q QuizQuestion
		var createdAtStr string
		if err := rows.Scan(&q.ID, &q.CourseID, &q.LessonID, &q.Type, &q.Question, &q.Explanation, &q.Metadata, &q.Position, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		questions[i].Options, err = r.optionsFor(ctx, questions[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return questions, nil
}

func (r *QuizRepo) optionsFor(ctx context.Context, questionID int64) ([]QuizOption, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, question_id, text, is_correct, position FROM quiz_options WHERE question_id = ? ORDER BY position, id",
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var options []QuizOption
	for rows.Next() {
		var opt QuizOption
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Text, &opt.IsCorrect, &opt.Position); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

// AssignToLesson binds the given questions to a lesson, positions numbered
// 1..N in the given order. Unknown IDs are skipped.
func (r *QuizRepo) AssignToLesson(ctx context.Context, lessonID int64, questionIDs []int64) (int, error) {
	if len(questionIDs) == 0 {
		return 0, ErrNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	position := 0
	for _, id := range questionIDs {
		res, err := tx.ExecContext(ctx,
			"UPDATE quiz_questions SET lesson_id = ?, position = ? WHERE id = ?",
			lessonID, position+1, id,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to assign question %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected > 0 {
			position++
		}
	}

	if position == 0 {
		return 0, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit assignment: %w", err)
	}
	return position, nil
}

// DeleteQuestion removes a question; its options cascade.
func (r *QuizRepo) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM quiz_questions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
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

// CountByType returns question counts per type for a course.
func (r *QuizRepo) CountByType(ctx context.Context, courseID int64) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT type, COUNT(*) FROM quiz_questions WHERE course_id = ? GROUP BY type",
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[typ] = count
	}
	return counts, rows.Err()
}

// CreateAttempt starts an attempt for a lesson and sets its ID.
func (r *QuizRepo) CreateAttempt(ctx context.Context, attempt *QuizAttempt) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO quiz_attempts (lesson_id) VALUES (?)",
		attempt.LessonID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}
	attempt.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read attempt id: %w", err)
	}
	return nil
}

// RecordAnswer stores one answer of an attempt and sets its ID.
func (r *QuizRepo) RecordAnswer(ctx context.Context, answer *QuizAnswer) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO quiz_answers (attempt_id, question_id, answer, is_correct) VALUES (?, ?, ?, ?)",
		answer.AttemptID, answer.QuestionID, answer.Answer, answer.IsCorrect,
	)
	if err != nil {
		return fmt.Errorf("failed to insert answer: %w", err)
	}
	answer.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read answer id: %w", err)
	}
	return nil
}

// AttemptScore computes the fraction of correct answers of an attempt.
func (r *QuizRepo) AttemptScore(ctx context.Context, attemptID int64) (float64, error) {
	var total, correct int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_correct), 0) FROM quiz_answers WHERE attempt_id = ?",
		attemptID,
	).Scan(&total, &correct)
	if err != nil {
		return 0, fmt.Errorf("failed to score attempt: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(correct) / float64(total), nil
}

// CompleteAttempt marks an attempt finished with its final score.
func (r *QuizRepo) CompleteAttempt(ctx context.Context, attemptID int64, score float64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE quiz_attempts SET completed_at = CURRENT_TIMESTAMP, score = ? WHERE id = ?",
		score, attemptID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete attempt: %w", err)
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
