package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skillbase/internal/quiz"
	"skillbase/internal/storage"
)

// QuizHandler serves quiz generation and assignment.
type QuizHandler struct {
	gen quiz.Generator
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(gen quiz.Generator) *QuizHandler {
	return &QuizHandler{gen: gen}
}

// GenerateQuizRequest is the payload for quiz generation. A zero LessonID
// generates an unassigned pool for the course.
type GenerateQuizRequest struct {
	CourseID           int64    `json:"course_id"`
	LessonID           int64    `json:"lesson_id,omitempty"`
	Types              []string `json:"types,omitempty"`
	Count              int      `json:"count,omitempty"`
	ReferenceResources []string `json:"reference_resources,omitempty"`
	CustomPrompt       string   `json:"custom_prompt,omitempty"`
}

// Generate handles POST /api/quizzes/generate.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := map[string]string{}
	if req.CourseID <= 0 {
		fields["course_id"] = "course_id must be a positive integer"
	}
	if req.LessonID < 0 {
		fields["lesson_id"] = "lesson_id must not be negative"
	}
	if req.Count < 0 || req.Count > 20 {
		fields["count"] = "count must be between 1 and 20"
	}
	if len(fields) > 0 {
		writeValidation(w, "Invalid generation request", fields)
		return
	}

	opts := quiz.GenerateOptions{
		ReferenceResources: req.ReferenceResources,
		CustomPrompt:       req.CustomPrompt,
	}

	var (
		questions []quizQuestionResponse
		err       error
	)
	if req.LessonID > 0 {
		generated, genErr := h.gen.GenerateForLesson(ctx, req.LessonID, req.CourseID, req.Types, req.Count, opts)
		questions, err = toQuestionResponses(generated), genErr
	} else {
		generated, genErr := h.gen.GenerateForCourse(ctx, req.CourseID, req.Types, req.Count, opts)
		questions, err = toQuestionResponses(generated), genErr
	}
	if err != nil {
		writeError(ctx, w, err, "Failed to generate quiz questions")
		return
	}

	writeData(w, http.StatusCreated, map[string]any{
		"generated": len(questions),
		"questions": questions,
	})
}

// AssignQuizRequest is the payload for binding questions to a lesson.
type AssignQuizRequest struct {
	LessonID    int64   `json:"lesson_id"`
	QuestionIDs []int64 `json:"question_ids"`
}

// Assign handles POST /api/quizzes/assign.
func (h *QuizHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AssignQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := map[string]string{}
	if req.LessonID <= 0 {
		fields["lesson_id"] = "lesson_id must be a positive integer"
	}
	if len(req.QuestionIDs) == 0 {
		fields["question_ids"] = "question_ids must not be empty"
	}
	if len(fields) > 0 {
		writeValidation(w, "Invalid assignment request", fields)
		return
	}

	assigned, err := h.gen.AssignToLesson(ctx, req.LessonID, req.QuestionIDs)
	if err != nil {
		writeError(ctx, w, err, "Failed to assign quiz questions")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"assigned": assigned})
}

// Types handles GET /api/quizzes/types.
func (h *QuizHandler) Types(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, quiz.KnownTypes)
}

// Stats handles GET /api/courses/{courseID}/quizzes/stats.
func (h *QuizHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courseID, ok := courseIDParam(w, r)
	if !ok {
		return
	}

	stats, err := h.gen.Stats(ctx, courseID)
	if err != nil {
		writeError(ctx, w, err, "Failed to load quiz stats")
		return
	}
	writeData(w, http.StatusOK, stats)
}

// CheckContent handles GET /api/courses/{courseID}/quizzes/check-content.
func (h *QuizHandler) CheckContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	courseID, ok := courseIDParam(w, r)
	if !ok {
		return
	}

	check, err := h.gen.CheckContent(ctx, courseID)
	if err != nil {
		writeError(ctx, w, err, "Failed to check course content")
		return
	}
	writeData(w, http.StatusOK, check)
}

// quizQuestionResponse is one generated question in API responses.
type quizQuestionResponse struct {
	ID          int64                `json:"id"`
	CourseID    int64                `json:"course_id"`
	LessonID    *int64               `json:"lesson_id,omitempty"`
	Type        string               `json:"type"`
	Question    string               `json:"question"`
	Explanation string               `json:"explanation,omitempty"`
	Metadata    json.RawMessage      `json:"metadata,omitempty"`
	Position    int                  `json:"position"`
	Options     []quizOptionResponse `json:"options,omitempty"`
}

type quizOptionResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Position  int    `json:"position"`
}

func toQuestionResponses(questions []storage.QuizQuestion) []quizQuestionResponse {
	out := make([]quizQuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp := quizQuestionResponse{
			ID:          q.ID,
			CourseID:    q.CourseID,
			Type:        q.Type,
			Question:    q.Question,
			Explanation: q.Explanation,
			Metadata:    json.RawMessage(q.Metadata),
			Position:    q.Position,
		}
		if q.LessonID.Valid {
			lessonID := q.LessonID.Int64
			resp.LessonID = &lessonID
		}
		for _, opt := range q.Options {
			resp.Options = append(resp.Options, quizOptionResponse{
				ID:        opt.ID,
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
				Position:  opt.Position,
			})
		}
		out = append(out, resp)
	}
	return out
}

func courseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil || courseID <= 0 {
		writeValidation(w, "Invalid course ID", nil)
		return 0, false
	}
	return courseID, true
}
