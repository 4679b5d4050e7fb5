package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skillbase/internal/contextutil"
	"skillbase/internal/llm"
	"skillbase/internal/storage"
	"skillbase/internal/vectorstore"
)

// GenerateOptions tunes a generation run.
type GenerateOptions struct {
	// ReferenceResources pins resource point IDs whose text is merged into
	// the source material.
	ReferenceResources []string
	// CustomPrompt is appended verbatim to the prompt's requirements.
	CustomPrompt string
}

// Stats summarizes the generated questions of a course.
type Stats struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

// ContentCheck reports whether a course has enough material to generate from.
type ContentCheck struct {
	HasContent       bool   `json:"has_content"`
	TotalLessons     int    `json:"total_lessons"`
	PublishedLessons int    `json:"published_lessons"`
	Source           string `json:"source"`
}

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks skillbase/internal/quiz Generator

// Generator drives quiz generation end to end: gather material, prompt the
// model in JSON mode, repair and validate the output, persist the survivors.
type Generator interface {
	// GenerateForLesson generates questions bound to a lesson.
	GenerateForLesson(ctx context.Context, lessonID, courseID int64, types []string, count int, opts GenerateOptions) ([]storage.QuizQuestion, error)
	// GenerateForCourse generates unassigned questions for later assignment.
	GenerateForCourse(ctx context.Context, courseID int64, types []string, count int, opts GenerateOptions) ([]storage.QuizQuestion, error)
	// AssignToLesson binds previously generated questions to a lesson.
	AssignToLesson(ctx context.Context, lessonID int64, questionIDs []int64) (int, error)
	// Stats summarizes a course's generated questions.
	Stats(ctx context.Context, courseID int64) (Stats, error)
	// CheckContent reports whether generation has material to work with.
	CheckContent(ctx context.Context, courseID int64) (ContentCheck, error)
}

type generator struct {
	courses   storage.CourseStore
	quizzes   storage.QuizStore
	resources vectorstore.ResourceStore
	client    llm.Generator
	logger    *slog.Logger
}

// NewGenerator creates a quiz generator.
func NewGenerator(courses storage.CourseStore, quizzes storage.QuizStore, resources vectorstore.ResourceStore, client llm.Generator) Generator {
	return &generator{
		courses:   courses,
		quizzes:   quizzes,
		resources: resources,
		client:    client,
		logger:    slog.Default(),
	}
}

// Generation parameters for the primary and retry prompts.
var (
	primaryParams = llm.GenerateParams{Temperature: 0.7, MaxTokens: 4000}
	retryParams   = llm.GenerateParams{Temperature: 0.5, MaxTokens: 2000}
)

func (g *generator) GenerateForLesson(ctx context.Context, lessonID, courseID int64, types []string, count int, opts GenerateOptions) ([]storage.QuizQuestion, error) {
	return g.generate(ctx, sql.NullInt64{Int64: lessonID, Valid: true}, courseID, types, count, opts)
}

func (g *generator) GenerateForCourse(ctx context.Context, courseID int64, types []string, count int, opts GenerateOptions) ([]storage.QuizQuestion, error) {
	return g.generate(ctx, sql.NullInt64{}, courseID, types, count, opts)
}

func (g *generator) generate(ctx context.Context, lessonID sql.NullInt64, courseID int64, types []string, count int, opts GenerateOptions) ([]storage.QuizQuestion, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if count <= 0 {
		count = 5
	}
	if len(types) == 0 {
		types = []string{TypeMultipleChoice}
	}

	content, source, err := g.gatherContent(ctx, courseID)
	if err != nil {
		return nil, err
	}
	content = g.mergeReferences(ctx, content, opts.ReferenceResources)
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoContent
	}

	logger.InfoContext(ctx, "quiz generation started",
		"course_id", courseID,
		"lesson_id", lessonID.Int64,
		"types", types,
		"count", count,
		"source", source,
	)

	drafts, err := g.generateDrafts(ctx, content, types, count, opts.CustomPrompt)
	if err != nil {
		return nil, err
	}

	return g.persist(ctx, lessonID, courseID, drafts), nil
}

// generateDrafts runs the prompt, repair and validation chain. The primary
// prompt gets one retry with a simplified prompt when its output fails
// validation entirely or the call itself fails; after that the repair
// fallback question carries the run.
func (g *generator) generateDrafts(ctx context.Context, content string, types []string, count int, custom string) ([]Draft, error) {
	logger := contextutil.LoggerFromContext(ctx)

	output, err := g.client.GenerateJSON(ctx, BuildPrompt(content, types, count, custom), primaryParams)
	if err != nil {
		logger.WarnContext(ctx, "primary quiz prompt failed, retrying simplified", "error", err)
		output, err = g.client.GenerateJSON(ctx, BuildSimplePrompt(content, types, count), retryParams)
		if err != nil {
			return nil, fmt.Errorf("quiz generation failed: %w", err)
		}
		return g.validateDrafts(ctx, ParseQuizArray(output), true), nil
	}

	valid := g.validateDrafts(ctx, ParseQuizArray(output), false)
	if len(valid) > 0 {
		return valid, nil
	}

	logger.WarnContext(ctx, "primary quiz output failed validation entirely, retrying simplified")
	output, err = g.client.GenerateJSON(ctx, BuildSimplePrompt(content, types, count), retryParams)
	if err != nil {
		return nil, fmt.Errorf("quiz generation retry failed: %w", err)
	}
	return g.validateDrafts(ctx, ParseQuizArray(output), true), nil
}

// validateDrafts filters drafts through Validate. On the final attempt an
// empty survivor set is replaced by the fallback question so the caller
// always has something to persist.
func (g *generator) validateDrafts(ctx context.Context, drafts []Draft, final bool) []Draft {
	logger := contextutil.LoggerFromContext(ctx)

	valid := make([]Draft, 0, len(drafts))
	for i := range drafts {
		if err := Validate(&drafts[i], i); err != nil {
			logger.WarnContext(ctx, "dropping invalid question", "error", err)
			continue
		}
		valid = append(valid, drafts[i])
	}

	if len(valid) == 0 && final {
		fallback := fallbackDraft()
		_ = Validate(&fallback, 0)
		valid = append(valid, fallback)
	}
	return valid
}

// persist writes each draft as one question with its options. A failing
// question is skipped; the batch carries on with partial success.
func (g *generator) persist(ctx context.Context, lessonID sql.NullInt64, courseID int64, drafts []Draft) []storage.QuizQuestion {
	logger := contextutil.LoggerFromContext(ctx)

	persisted := make([]storage.QuizQuestion, 0, len(drafts))
	for i, draft := range drafts {
		q := draftToQuestion(draft, lessonID, courseID, len(persisted)+1)
		if err := g.quizzes.CreateQuestion(ctx, &q); err != nil {
			logger.ErrorContext(ctx, "failed to persist question", "index", i, "error", err)
			continue
		}
		persisted = append(persisted, q)
	}

	logger.InfoContext(ctx, "quiz generation finished", "course_id", courseID, "persisted", len(persisted), "drafts", len(drafts))
	return persisted
}

func draftToQuestion(d Draft, lessonID sql.NullInt64, courseID int64, position int) storage.QuizQuestion {
	meta := map[string]any{
		"difficulty":   d.Difficulty,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if d.CorrectAnswer != "" {
		meta["correct_answer"] = d.CorrectAnswer
	}
	if d.Note != "" {
		meta["note"] = d.Note
	}
	metadata, _ := json.Marshal(meta)

	q := storage.QuizQuestion{
		CourseID:    courseID,
		LessonID:    lessonID,
		Type:        d.Type,
		Question:    d.Question,
		Explanation: d.Explanation,
		Metadata:    string(metadata),
		Position:    position,
	}
	for i, opt := range d.Options {
		q.Options = append(q.Options, storage.QuizOption{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Position:  i + 1,
		})
	}
	return q
}

// stripHTML flattens lesson HTML into prompt-ready text.
func stripHTML(s string) string {
	return reHTMLTags.ReplaceAllString(s, " ")
}

// gatherContent prefers published lessons, falls back to all lessons
// including drafts, then to the course title and description.
func (g *generator) gatherContent(ctx context.Context, courseID int64) (string, string, error) {
	lessons, err := g.courses.ListLessons(ctx, courseID, true)
	if err != nil {
		return "", "", fmt.Errorf("failed to list lessons: %w", err)
	}
	source := "published_lessons"

	if len(lessons) == 0 {
		lessons, err = g.courses.ListLessons(ctx, courseID, false)
		if err != nil {
			return "", "", fmt.Errorf("failed to list lessons: %w", err)
		}
		source = "all_lessons"
	}

	var parts []string
	for _, lesson := range lessons {
		text := strings.TrimSpace(stripHTML(lesson.Content))
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Lesson: %s\n%s", lesson.Title, text))
	}

	if len(parts) == 0 {
		course, err := g.courses.GetCourse(ctx, courseID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return "", "", ErrNoContent
			}
			return "", "", fmt.Errorf("failed to load course: %w", err)
		}
		source = "course_metadata"
		meta := strings.TrimSpace(course.Title + "\n" + course.Description)
		if meta == "" {
			return "", source, nil
		}
		parts = append(parts, "Course: "+meta)
	}

	return strings.Join(parts, "\n\n"), source, nil
}

// mergeReferences prepends pinned resource text. Resource lookup failures
// degrade to the unmerged content.
func (g *generator) mergeReferences(ctx context.Context, content string, ids []string) string {
	if len(ids) == 0 {
		return content
	}
	logger := contextutil.LoggerFromContext(ctx)

	resources, err := g.resources.GetByIDs(ctx, ids)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch reference resources", "error", err)
		return content
	}

	var parts []string
	for _, res := range resources {
		if text := strings.TrimSpace(res.Content); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return content
	}
	merged := "Reference material:\n" + strings.Join(parts, "\n\n")
	if strings.TrimSpace(content) == "" {
		return merged
	}
	return merged + "\n\n" + content
}

func (g *generator) AssignToLesson(ctx context.Context, lessonID int64, questionIDs []int64) (int, error) {
	count, err := g.quizzes.AssignToLesson(ctx, lessonID, questionIDs)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, ErrQuestionsNotFound
		}
		return 0, err
	}
	return count, nil
}

func (g *generator) Stats(ctx context.Context, courseID int64) (Stats, error) {
	counts, err := g.quizzes.CountByType(ctx, courseID)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{ByType: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

func (g *generator) CheckContent(ctx context.Context, courseID int64) (ContentCheck, error) {
	all, err := g.courses.ListLessons(ctx, courseID, false)
	if err != nil {
		return ContentCheck{}, err
	}

	check := ContentCheck{TotalLessons: len(all)}
	for _, lesson := range all {
		if lesson.Published {
			check.PublishedLessons++
		}
	}

	content, source, err := g.gatherContent(ctx, courseID)
	if err != nil {
		if errors.Is(err, ErrNoContent) {
			return check, nil
		}
		return ContentCheck{}, err
	}
	check.HasContent = strings.TrimSpace(content) != ""
	if check.HasContent {
		check.Source = source
	}
	return check, nil
}
