// Package http wires the chi router and request middleware.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skillbase/internal/handlers"
	"skillbase/internal/knowledge"
	"skillbase/internal/quiz"
	"skillbase/internal/rag"
	"skillbase/internal/resource"
	"skillbase/internal/storage"
	"skillbase/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RAGEngine        rag.Engine
	KnowledgeService knowledge.Service
	ResourceService  resource.Service
	QuizGenerator    quiz.Generator
	QuizStore        storage.QuizStore
	DB               *sql.DB
	VectorStore      vectorstore.VectorStore
	Collections      []string
}

// NewRouter creates the HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	ragHandler := handlers.NewRAGHandler(deps.RAGEngine)
	knowledgeHandler := handlers.NewKnowledgeHandler(deps.KnowledgeService)
	resourceHandler := handlers.NewResourceHandler(deps.ResourceService)
	quizHandler := handlers.NewQuizHandler(deps.QuizGenerator)
	attemptHandler := handlers.NewAttemptHandler(deps.QuizStore)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.Collections)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/rag", func(r chi.Router) {
			r.Post("/generate-content", ragHandler.GenerateContent)
			r.Post("/knowledge", knowledgeHandler.Add)
			r.Get("/knowledge", knowledgeHandler.List)
			r.Post("/knowledge/search", knowledgeHandler.Search)
			r.Post("/knowledge/sync", knowledgeHandler.Sync)
			r.Delete("/knowledge/{id}", knowledgeHandler.Delete)
		})

		r.Route("/resources", func(r chi.Router) {
			r.Post("/", resourceHandler.Create)
			r.Post("/search", resourceHandler.Search)
			r.Delete("/{id}", resourceHandler.Delete)
		})

		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/generate", quizHandler.Generate)
			r.Post("/assign", quizHandler.Assign)
			r.Get("/types", quizHandler.Types)
			r.Post("/attempts", attemptHandler.Start)
			r.Post("/attempts/{id}/answers", attemptHandler.Answer)
			r.Post("/attempts/{id}/complete", attemptHandler.Complete)
		})

		r.Route("/courses/{courseID}", func(r chi.Router) {
			r.Get("/resources", resourceHandler.List)
			r.Get("/quizzes/stats", quizHandler.Stats)
			r.Get("/quizzes/check-content", quizHandler.CheckContent)
		})
	})

	return r
}
