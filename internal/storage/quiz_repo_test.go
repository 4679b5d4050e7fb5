package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func seedQuestion(t *testing.T, db *sql.DB, courseID int64, typ, text string) *QuizQuestion {
	t.Helper()

	q := &QuizQuestion{
		CourseID: courseID,
		Type:     typ,
		Question: text,
		Options: []QuizOption{
			{Text: "Right answer", IsCorrect: true},
			{Text: "Wrong answer", IsCorrect: false},
		},
	}
	if err := NewQuizRepo(db).CreateQuestion(context.Background(), q); err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}
	return q
}

func TestQuizRepo_CreateQuestion(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepo(db)
	ctx := context.Background()
	course, _ := seedCourse(t, db)

	q := seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "What is a cell?")
	if q.ID == 0 {
		t.Fatal("CreateQuestion() did not set question ID")
	}
	for i, opt := range q.Options {
		if opt.ID == 0 {
			t.Errorf("option %d has no ID", i)
		}
		if opt.QuestionID != q.ID {
			t.Errorf("option %d QuestionID = %d, want %d", i, opt.QuestionID, q.ID)
		}
	}

	got, err := repo.GetWithOptions(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetWithOptions() error = %v", err)
	}
	if len(got.Options) != 2 {
		t.Fatalf("GetWithOptions() returned %d options, want 2", len(got.Options))
	}
	if got.Metadata != "{}" {
		t.Errorf("Metadata = %q, want default {}", got.Metadata)
	}
	if !got.Options[0].IsCorrect || got.Options[1].IsCorrect {
		t.Error("option correctness not preserved")
	}
}

func TestQuizRepo_CreateQuestion_Metadata(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepo(db)
	ctx := context.Background()
	course, _ := seedCourse(t, db)

	q := &QuizQuestion{
		CourseID: course.ID,
		Type:     "TYPE_ANSWER",
		Question: "Name the powerhouse of the cell.",
		Metadata: `{"correct_answer":"mitochondria"}`,
	}
	if err := repo.CreateQuestion(ctx, q); err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}

	got, err := repo.GetWithOptions(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetWithOptions() error = %v", err)
	}
	if got.Metadata != `{"correct_answer":"mitochondria"}` {
		t.Errorf("Metadata = %q", got.Metadata)
	}
	if len(got.Options) != 0 {
		t.Errorf("free-text question should have no options, got %d", len(got.Options))
	}
}

func TestQuizRepo_AssignToLesson(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepo(db)
	ctx := context.Background()
	course, lesson := seedCourse(t, db)

	a := seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "q-a")
	b := seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "q-b")
	c := seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "q-c")

	// Assignment order dictates position, not ID order.
	count, err := repo.AssignToLesson(ctx, lesson.ID, []int64{c.ID, a.ID, b.ID})
	if err != nil {
		t.Fatalf("AssignToLesson() error = %v", err)
	}
	if count != 3 {
		t.Fatalf("AssignToLesson() count = %d, want 3", count)
	}

	questions, err := repo.ListByLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("ListByLesson() returned %d questions, want 3", len(questions))
	}
	wantOrder := []int64{c.ID, a.ID, b.ID}
	for i, q := range questions {
		if q.ID != wantOrder[i] {
			t.Errorf("position %d holds question %d, want %d", i+1, q.ID, wantOrder[i])
		}
		if q.Position != i+1 {
			t.Errorf("question %d Position = %d, want %d", q.ID, q.Position, i+1)
		}
		if !q.LessonID.Valid || q.LessonID.Int64 != lesson.ID {
			t.Errorf("question %d LessonID = %+v, want %d", q.ID, q.LessonID, lesson.ID)
		}
	}
}

func TestQuizRepo_AssignToLesson_SkipsUnknown(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepo(db)
	ctx := context.Background()
	course, lesson := seedCourse(t, db)

	a := seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "q-a")

	count, err := repo.AssignToLesson(ctx, lesson.ID, []int64{999, a.ID})
	if err != nil {
		t.Fatalf("AssignToLesson() error = %v", err)
	}
	if count != 1 {
		t.Errorf("AssignToLesson() count = %d, want 1", count)
	}

	questions, err := repo.ListByLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("ListByLesson() error = %v", err)
	}
	if len(questions) != 1 || questions[0].Position != 1 {
		t.Errorf("surviving question should hold position 1, got %+v", questions)
	}
}

func TestQuizRepo_AssignToLesson_NoneFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepo(db)
	ctx := context.Background()
	_, lesson := seedCourse(t, db)

	if _, err := repo.AssignToLesson(ctx, lesson.ID, []int64{997, 998}); !errors.Is(err, ErrNotFound) {
		t.Errorf("AssignToLesson() error = %v, want ErrNotFound", err)
	}
	if _, err := repo.AssignToLesson(ctx, lesson.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("AssignToLesson(empty) error = %v, want ErrNotFound", err)
	}
}

func TestQuizRepo_DeleteQuestion_CascadesOptions(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepo(db)
	ctx := context.Background()
	course, _ := seedCourse(t, db)

	q := seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "doomed")
	if err := repo.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM quiz_options WHERE question_id = ?", q.ID).Scan(&count); err != nil {
		t.Fatalf("count options: %v", err)
	}
	if count != 0 {
		t.Errorf("options remaining after delete = %d, want 0", count)
	}

	if err := repo.DeleteQuestion(ctx, q.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteQuestion() error = %v, want ErrNotFound", err)
	}
}

func TestQuizRepo_CountByType(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepo(db)
	ctx := context.Background()
	course, _ := seedCourse(t, db)

	seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "q1")
	seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "q2")
	seedQuestion(t, db, course.ID, "TRUE_FALSE", "q3")

	counts, err := repo.CountByType(ctx, course.ID)
	if err != nil {
		t.Fatalf("CountByType() error = %v", err)
	}
	if counts["MULTIPLE_CHOICE"] != 2 || counts["TRUE_FALSE"] != 1 {
		t.Errorf("CountByType() = %v", counts)
	}
}

func TestQuizRepo_AttemptFlow(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepo(db)
	ctx := context.Background()
	course, lesson := seedCourse(t, db)
	q := seedQuestion(t, db, course.ID, "MULTIPLE_CHOICE", "q1")

	attempt := &QuizAttempt{LessonID: lesson.ID}
	if err := repo.CreateAttempt(ctx, attempt); err != nil {
		t.Fatalf("CreateAttempt() error = %v", err)
	}
	if attempt.ID == 0 {
		t.Fatal("CreateAttempt() did not set ID")
	}

	answer := &QuizAnswer{AttemptID: attempt.ID, QuestionID: q.ID, Answer: `[1]`, IsCorrect: true}
	if err := repo.RecordAnswer(ctx, answer); err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}
	wrong := &QuizAnswer{AttemptID: attempt.ID, QuestionID: q.ID, Answer: `[2]`, IsCorrect: false}
	if err := repo.RecordAnswer(ctx, wrong); err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}

	if got, err := repo.AttemptScore(ctx, attempt.ID); err != nil || got != 0.5 {
		t.Errorf("AttemptScore() = %v, %v, want 0.5", got, err)
	}
	if got, err := repo.AttemptScore(ctx, 999); err != nil || got != 0 {
		t.Errorf("AttemptScore(empty) = %v, %v, want 0", got, err)
	}

	if err := repo.CompleteAttempt(ctx, attempt.ID, 100); err != nil {
		t.Fatalf("CompleteAttempt() error = %v", err)
	}
	if err := repo.CompleteAttempt(ctx, 999, 50); !errors.Is(err, ErrNotFound) {
		t.Errorf("CompleteAttempt(missing) error = %v, want ErrNotFound", err)
	}

	var score float64
	var completed sql.NullString
	if err := db.QueryRow("SELECT score, completed_at FROM quiz_attempts WHERE id = ?", attempt.ID).Scan(&score, &completed); err != nil {
		t.Fatalf("query attempt: %v", err)
	}
	if score != 100 || !completed.Valid {
		t.Errorf("attempt score = %v completed = %v", score, completed)
	}
}
