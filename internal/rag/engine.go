// Package rag assembles retrieval-augmented context and drives lesson
// content generation.
package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"skillbase/internal/contextutil"
	"skillbase/internal/format"
	"skillbase/internal/llm"
	"skillbase/internal/storage"
	"skillbase/internal/vectorstore"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks skillbase/internal/rag Engine

// Engine provides retrieval-augmented lesson content generation.
type Engine interface {
	// GenerateLessonContent produces formatted HTML lesson content for a
	// title, grounded in the course's knowledge base and pinned resources.
	GenerateLessonContent(ctx context.Context, title string, courseID int64, opts Options) (Result, error)
	// GenerateContent is a direct passthrough to the model with HTML
	// formatting applied, no retrieval.
	GenerateContent(ctx context.Context, prompt string, params llm.GenerateParams) (string, error)
}

type engine struct {
	embedder            llm.Embedder
	store               vectorstore.VectorStore
	resources           vectorstore.ResourceStore
	courses             storage.CourseStore
	client              llm.Generator
	knowledgeCollection string
	threshold           float32
	limit               int
	logger              *slog.Logger
}

// NewEngine creates a RAG engine.
func NewEngine(
	embedder llm.Embedder,
	store vectorstore.VectorStore,
	resources vectorstore.ResourceStore,
	courses storage.CourseStore,
	client llm.Generator,
	knowledgeCollection string,
	threshold float32,
	limit int,
) Engine {
	return &engine{
		embedder:            embedder,
		store:               store,
		resources:           resources,
		courses:             courses,
		client:              client,
		knowledgeCollection: knowledgeCollection,
		threshold:           threshold,
		limit:               limit,
		logger:              slog.Default(),
	}
}

var generationParams = llm.GenerateParams{Temperature: 0.7, MaxTokens: 4000}

func (e *engine) GenerateLessonContent(ctx context.Context, title string, courseID int64, opts Options) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(title) == "" {
		return Result{}, fmt.Errorf("lesson title is required")
	}

	vec, err := e.embedder.EmbedText(ctx, title)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed lesson title", "title", title, "error", err)
		return Result{}, err
	}

	pinned := e.fetchPinned(ctx, opts.ReferenceResources)
	matches := e.search(ctx, vec, courseID)

	contextText, sources := e.buildContext(ctx, courseID, pinned, matches)

	logger.InfoContext(ctx, "lesson content generation started",
		"title", title,
		"course_id", courseID,
		"pinned", len(pinned),
		"matches", len(matches),
	)

	output, err := e.client.Generate(ctx, buildLessonPrompt(title, contextText, opts.Extra), generationParams)
	if err != nil {
		logger.ErrorContext(ctx, "lesson content generation failed", "title", title, "error", err)
		return Result{}, err
	}

	html, err := format.FormatHTML(output)
	if err != nil {
		return Result{}, err
	}
	return Result{HTML: html, Sources: sources}, nil
}

func (e *engine) GenerateContent(ctx context.Context, prompt string, params llm.GenerateParams) (string, error) {
	if params.MaxTokens == 0 {
		params = generationParams
	}
	output, err := e.client.Generate(ctx, prompt, params)
	if err != nil {
		return "", err
	}
	return format.FormatHTML(output)
}

// search runs the similarity query. Backend failures degrade to an empty
// result set; missing context must not block generation.
func (e *engine) search(ctx context.Context, vec []float32, courseID int64) []vectorstore.SearchResult {
	logger := contextutil.LoggerFromContext(ctx)

	filters := map[string]any{"course_id": courseID}
	results, err := e.store.Search(ctx, e.knowledgeCollection, vec, e.limit, e.threshold, filters)
	if err != nil {
		logger.WarnContext(ctx, "similarity search failed, continuing with empty context", "error", err)
		return nil
	}
	return results
}

// fetchPinned loads explicitly referenced resources. Lookup failures degrade
// to no pinned context.
func (e *engine) fetchPinned(ctx context.Context, ids []string) []vectorstore.StoredResource {
	if len(ids) == 0 {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	resources, err := e.resources.GetByIDs(ctx, ids)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch pinned resources", "error", err)
		return nil
	}
	return resources
}

// buildContext assembles the prompt context: pinned resources first, then
// similarity matches with rounded percentage relevance, then course
// metadata. Pinned resources always outrank matches.
func (e *engine) buildContext(ctx context.Context, courseID int64, pinned []vectorstore.StoredResource, matches []vectorstore.SearchResult) (string, []ContextSource) {
	var b strings.Builder
	var sources []ContextSource

	if len(pinned) > 0 {
		b.WriteString("REFERENCE MATERIALS (selected by the author, use these first):\n")
		for _, res := range pinned {
			title, _ := res.Meta["title"].(string)
			fmt.Fprintf(&b, "--- %s ---\n%s\n\n", title, res.Content)
			sources = append(sources, ContextSource{Title: title, Similarity: 1.0, Pinned: true})
		}
	}

	if len(matches) > 0 {
		b.WriteString("RELATED COURSE KNOWLEDGE:\n")
		for _, m := range matches {
			title, _ := m.Meta["title"].(string)
			content, _ := m.Meta["content"].(string)
			pct := int(math.Round(float64(m.Score) * 100))
			fmt.Fprintf(&b, "--- %s (%d%% relevant) ---\n%s\n\n", title, pct, content)
			sources = append(sources, ContextSource{Title: title, Similarity: m.Score})
		}
	}

	if course, err := e.courses.GetCourse(ctx, courseID); err == nil {
		fmt.Fprintf(&b, "COURSE: %s\n%s\n", course.Title, course.Description)
	} else if !errors.Is(err, storage.ErrNotFound) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to load course metadata", "course_id", courseID, "error", err)
	}

	return b.String(), sources
}

// buildLessonPrompt enumerates the strict HTML output rules and appends any
// caller-supplied requirements verbatim.
func buildLessonPrompt(title, contextText string, extra map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write lesson content for a lesson titled %q.\n\n", title)
	b.WriteString("FORMATTING REQUIREMENTS:\n")
	b.WriteString("- Output clean HTML only, no markdown and no code fences.\n")
	b.WriteString("- Allowed tags: <h2>, <h3>, <p>, <ul>, <ol>, <li>, <strong>, <em>.\n")
	b.WriteString("- Start with one <h2> heading.\n")
	b.WriteString("- Keep paragraphs short, no empty paragraphs, no inline styles.\n")

	if len(extra) > 0 {
		b.WriteString("\nADDITIONAL REQUIREMENTS:\n")
		keys := make([]string, 0, len(extra))
		for key := range extra {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", key, extra[key])
		}
	}

	if strings.TrimSpace(contextText) != "" {
		b.WriteString("\nUse the following material as grounding:\n\n")
		b.WriteString(contextText)
	}
	return b.String()
}
