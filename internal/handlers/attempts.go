package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skillbase/internal/quiz"
	"skillbase/internal/storage"
)

// AttemptHandler serves quiz attempt tracking and answer grading.
type AttemptHandler struct {
	quizzes storage.QuizStore
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(quizzes storage.QuizStore) *AttemptHandler {
	return &AttemptHandler{quizzes: quizzes}
}

// StartAttemptRequest is the payload for starting a lesson quiz attempt.
type StartAttemptRequest struct {
	LessonID int64 `json:"lesson_id"`
}

// Start handles POST /api/quizzes/attempts.
func (h *AttemptHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req StartAttemptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.LessonID <= 0 {
		writeValidation(w, "Invalid attempt request", map[string]string{
			"lesson_id": "lesson_id must be a positive integer",
		})
		return
	}

	attempt := &storage.QuizAttempt{LessonID: req.LessonID}
	if err := h.quizzes.CreateAttempt(ctx, attempt); err != nil {
		writeError(ctx, w, err, "Failed to start quiz attempt")
		return
	}
	writeData(w, http.StatusCreated, map[string]any{
		"attempt_id": attempt.ID,
		"lesson_id":  attempt.LessonID,
	})
}

// AnswerRequest is the payload for answering one question within an attempt.
// Choice questions send option_ids, free-text questions send text.
type AnswerRequest struct {
	QuestionID int64   `json:"question_id"`
	Text       string  `json:"text,omitempty"`
	OptionIDs  []int64 `json:"option_ids,omitempty"`
}

// Answer handles POST /api/quizzes/attempts/{id}/answers.
func (h *AttemptHandler) Answer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	attemptID, ok := attemptIDParam(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuestionID <= 0 {
		writeValidation(w, "Invalid answer request", map[string]string{
			"question_id": "question_id must be a positive integer",
		})
		return
	}

	question, err := h.quizzes.GetWithOptions(ctx, req.QuestionID)
	if err != nil {
		writeError(ctx, w, err, "Failed to load question")
		return
	}

	correct, err := quiz.IsAnswerCorrect(question, quiz.Answer{Text: req.Text, OptionIDs: req.OptionIDs})
	if err != nil {
		writeError(ctx, w, err, "Failed to grade answer")
		return
	}

	recorded := req.Text
	if len(req.OptionIDs) > 0 {
		raw, err := json.Marshal(req.OptionIDs)
		if err != nil {
			writeError(ctx, w, err, "Failed to encode answer")
			return
		}
		recorded = string(raw)
	}

	answer := &storage.QuizAnswer{
		AttemptID:  attemptID,
		QuestionID: req.QuestionID,
		Answer:     recorded,
		IsCorrect:  correct,
	}
	if err := h.quizzes.RecordAnswer(ctx, answer); err != nil {
		writeError(ctx, w, err, "Failed to record answer")
		return
	}
	writeData(w, http.StatusCreated, map[string]any{
		"answer_id":  answer.ID,
		"is_correct": correct,
	})
}

// Complete handles POST /api/quizzes/attempts/{id}/complete.
func (h *AttemptHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	attemptID, ok := attemptIDParam(w, r)
	if !ok {
		return
	}

	score, err := h.quizzes.AttemptScore(ctx, attemptID)
	if err != nil {
		writeError(ctx, w, err, "Failed to score attempt")
		return
	}
	if err := h.quizzes.CompleteAttempt(ctx, attemptID, score); err != nil {
		writeError(ctx, w, err, "Failed to complete attempt")
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"attempt_id": attemptID,
		"score":      score,
	})
}

func attemptIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeValidation(w, "Invalid attempt ID", nil)
		return 0, false
	}
	return id, true
}
