package storage

import (
	"database/sql"
	"time"
)

// Course represents a course in the database.
type Course struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
}

// Lesson represents a lesson within a course.
type Lesson struct {
	ID        int64
	CourseID  int64
	Title     string
	Content   string // HTML lesson body
	Published bool
	Position  int
	CreatedAt time.Time
}

// KnowledgeEntry represents one entry of the curated knowledge base.
// CourseID 0 marks an entry shared across all courses.
type KnowledgeEntry struct {
	ID        int64
	CourseID  int64
	Title     string
	Content   string
	Category  string
	UpdatedAt time.Time
}

// QuizQuestion represents a stored quiz question. Metadata is a JSON object;
// free-text question types keep their correct answer under "correct_answer".
type QuizQuestion struct {
	ID          int64
	CourseID    int64
	LessonID    sql.NullInt64
	Type        string
	Question    string
	Explanation string
	Metadata    string
	Position    int
	CreatedAt   time.Time
	Options     []QuizOption
}

// QuizOption represents one answer option of a choice question.
type QuizOption struct {
	ID         int64
	QuestionID int64
	Text       string
	IsCorrect  bool
	Position   int
}

// QuizAttempt represents a learner's run through a lesson quiz.
type QuizAttempt struct {
	ID          int64
	LessonID    int64
	StartedAt   time.Time
	CompletedAt sql.NullTime
	Score       float64
}

// QuizAnswer represents one recorded answer within an attempt. Answer holds
// either free text or a JSON array of selected option IDs.
type QuizAnswer struct {
	ID         int64
	AttemptID  int64
	QuestionID int64
	Answer     string
	IsCorrect  bool
}
