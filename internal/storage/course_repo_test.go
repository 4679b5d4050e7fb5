package storage

import (
	"context"
	"errors"
	"testing"
)

func TestCourseRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepo(db)
	ctx := context.Background()

	course := &Course{Title: "Chemistry", Description: "Atoms and bonds"}
	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}
	if course.ID == 0 {
		t.Fatal("CreateCourse() did not set ID")
	}

	got, err := repo.GetCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetCourse() error = %v", err)
	}
	if got.Title != "Chemistry" {
		t.Errorf("GetCourse() Title = %q", got.Title)
	}
	if got.CreatedAt.IsZero() {
		t.Error("GetCourse() CreatedAt should be set")
	}
}

func TestCourseRepo_GetCourse_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepo(db)

	_, err := repo.GetCourse(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCourse() error = %v, want ErrNotFound", err)
	}
}

func TestCourseRepo_ListLessons(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepo(db)
	ctx := context.Background()
	course, _ := seedCourse(t, db)

	draft := &Lesson{CourseID: course.ID, Title: "Draft lesson", Published: false, Position: 2}
	if err := repo.CreateLesson(ctx, draft); err != nil {
		t.Fatalf("CreateLesson() error = %v", err)
	}

	all, err := repo.ListLessons(ctx, course.ID, false)
	if err != nil {
		t.Fatalf("ListLessons() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListLessons() returned %d lessons, want 2", len(all))
	}
	if all[0].Position > all[1].Position {
		t.Error("ListLessons() should order by position")
	}

	published, err := repo.ListLessons(ctx, course.ID, true)
	if err != nil {
		t.Fatalf("ListLessons(publishedOnly) error = %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("ListLessons(publishedOnly) returned %d lessons, want 1", len(published))
	}
	if published[0].Title != "Cells" {
		t.Errorf("published lesson = %q, want Cells", published[0].Title)
	}
}

func TestCourseRepo_UpdateLessonContent(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepo(db)
	ctx := context.Background()
	_, lesson := seedCourse(t, db)

	if err := repo.UpdateLessonContent(ctx, lesson.ID, "<h2>Updated</h2>"); err != nil {
		t.Fatalf("UpdateLessonContent() error = %v", err)
	}

	got, err := repo.GetLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("GetLesson() error = %v", err)
	}
	if got.Content != "<h2>Updated</h2>" {
		t.Errorf("Content = %q", got.Content)
	}

	if err := repo.UpdateLessonContent(ctx, 999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateLessonContent(missing) error = %v, want ErrNotFound", err)
	}
}
