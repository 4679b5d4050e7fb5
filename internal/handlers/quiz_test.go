package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"skillbase/internal/quiz"
	quizmocks "skillbase/internal/quiz/mocks"
	"skillbase/internal/storage"
)

func newQuizRouter(gen quiz.Generator) http.Handler {
	h := NewQuizHandler(gen)
	r := chi.NewRouter()
	r.Post("/api/quizzes/generate", h.Generate)
	r.Post("/api/quizzes/assign", h.Assign)
	r.Get("/api/quizzes/types", h.Types)
	r.Get("/api/courses/{courseID}/quizzes/stats", h.Stats)
	r.Get("/api/courses/{courseID}/quizzes/check-content", h.CheckContent)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestQuizHandler_GenerateForLesson(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := quizmocks.NewMockGenerator(ctrl)
	router := newQuizRouter(gen)

	gen.EXPECT().
		GenerateForLesson(gomock.Any(), int64(3), int64(1), []string{"TRUE_FALSE"}, 2, quiz.GenerateOptions{}).
		Return([]storage.QuizQuestion{
			{ID: 10, CourseID: 1, LessonID: sql.NullInt64{Int64: 3, Valid: true}, Type: "TRUE_FALSE", Question: "Water boils at 100C?", Metadata: `{"correct_answer":"true"}`, Position: 1},
		}, nil)

	rec := postJSON(t, router, "/api/quizzes/generate", map[string]any{
		"course_id": 1, "lesson_id": 3, "types": []string{"TRUE_FALSE"}, "count": 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Errorf("envelope = %+v", env)
	}
}

func TestQuizHandler_GenerateForCourse(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := quizmocks.NewMockGenerator(ctrl)
	router := newQuizRouter(gen)

	gen.EXPECT().
		GenerateForCourse(gomock.Any(), int64(1), gomock.Any(), 0, gomock.Any()).
		Return([]storage.QuizQuestion{{ID: 11, CourseID: 1, Type: "MULTIPLE_CHOICE"}}, nil)

	rec := postJSON(t, router, "/api/quizzes/generate", map[string]any{"course_id": 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestQuizHandler_GenerateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := newQuizRouter(quizmocks.NewMockGenerator(ctrl))

	rec := postJSON(t, router, "/api/quizzes/generate", map[string]any{"course_id": 0, "count": 50})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Errors["course_id"] == "" || env.Errors["count"] == "" {
		t.Errorf("field errors = %+v", env.Errors)
	}
}

func TestQuizHandler_GenerateNoContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := quizmocks.NewMockGenerator(ctrl)
	router := newQuizRouter(gen)

	gen.EXPECT().
		GenerateForCourse(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, quiz.ErrNoContent)

	rec := postJSON(t, router, "/api/quizzes/generate", map[string]any{"course_id": 1})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestQuizHandler_Assign(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := quizmocks.NewMockGenerator(ctrl)
	router := newQuizRouter(gen)

	gen.EXPECT().
		AssignToLesson(gomock.Any(), int64(3), []int64{7, 5, 6}).
		Return(3, nil)

	rec := postJSON(t, router, "/api/quizzes/assign", map[string]any{
		"lesson_id": 3, "question_ids": []int64{7, 5, 6},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestQuizHandler_AssignNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := quizmocks.NewMockGenerator(ctrl)
	router := newQuizRouter(gen)

	gen.EXPECT().
		AssignToLesson(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, quiz.ErrQuestionsNotFound)

	rec := postJSON(t, router, "/api/quizzes/assign", map[string]any{
		"lesson_id": 3, "question_ids": []int64{999},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestQuizHandler_Types(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := newQuizRouter(quizmocks.NewMockGenerator(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/quizzes/types", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var env struct {
		Data []string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 5 {
		t.Errorf("types = %v", env.Data)
	}
}

func TestQuizHandler_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := quizmocks.NewMockGenerator(ctrl)
	router := newQuizRouter(gen)

	gen.EXPECT().
		Stats(gomock.Any(), int64(4)).
		Return(quiz.Stats{Total: 6, ByType: map[string]int{"MULTIPLE_CHOICE": 6}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/courses/4/quizzes/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestQuizHandler_CheckContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := quizmocks.NewMockGenerator(ctrl)
	router := newQuizRouter(gen)

	gen.EXPECT().
		CheckContent(gomock.Any(), int64(4)).
		Return(quiz.ContentCheck{HasContent: true, TotalLessons: 3, PublishedLessons: 2, Source: "published_lessons"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/courses/4/quizzes/check-content", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
