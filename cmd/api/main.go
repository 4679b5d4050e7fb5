package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"skillbase/internal/config"
	"skillbase/internal/http"
	"skillbase/internal/knowledge"
	"skillbase/internal/llm"
	"skillbase/internal/quiz"
	"skillbase/internal/rag"
	"skillbase/internal/resource"
	"skillbase/internal/storage"
	"skillbase/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	courseRepo := storage.NewCourseRepo(db)
	knowledgeRepo := storage.NewKnowledgeRepo(db)
	quizRepo := storage.NewQuizRepo(db)

	// Initialize Qdrant vector store
	ctx := context.Background()
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collections exist with the correct vector size
	for _, collection := range []string{cfg.KnowledgeCollection, cfg.ResourceCollection} {
		if err := vectorStore.EnsureCollection(ctx, collection, cfg.VectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection %q: %v", collection, err)
		}
	}
	slog.Info("Qdrant collections ready",
		"knowledge", cfg.KnowledgeCollection,
		"resources", cfg.ResourceCollection,
		"vector_size", cfg.VectorSize,
	)

	resourceStore := vectorstore.NewQdrantResourceStore(vectorStore, cfg.ResourceCollection)

	// External model clients
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.VectorSize, cfg.LLMTimeout)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout)

	// Domain services
	knowledgeService := knowledge.NewService(
		knowledgeRepo, embedder, vectorStore,
		cfg.KnowledgeCollection, cfg.SimilarityThreshold, cfg.SearchLimit,
	)
	resourceService := resource.NewService(
		vectorStore, resourceStore, embedder,
		cfg.ResourceCollection, cfg.SimilarityThreshold, cfg.SearchLimit,
	)
	ragEngine := rag.NewEngine(
		embedder, vectorStore, resourceStore, courseRepo, llmClient,
		cfg.KnowledgeCollection, cfg.SimilarityThreshold, cfg.SearchLimit,
	)
	quizGenerator := quiz.NewGenerator(courseRepo, quizRepo, resourceStore, llmClient)
	slog.Info("Services initialized")

	deps := &http.Deps{
		RAGEngine:        ragEngine,
		KnowledgeService: knowledgeService,
		ResourceService:  resourceService,
		QuizGenerator:    quizGenerator,
		QuizStore:        quizRepo,
		DB:               db,
		VectorStore:      vectorStore,
		Collections:      []string{cfg.KnowledgeCollection, cfg.ResourceCollection},
	}
	router := http.NewRouter(deps)

	// Bring the vector index up to date in the background after the router
	// is ready.
	go func() {
		syncCtx := context.Background()
		slog.Info("Starting background knowledge sync")
		stats, err := knowledgeService.Sync(syncCtx)
		if err != nil {
			slog.Error("Knowledge sync failed", "error", err)
			return
		}
		slog.Info("Knowledge sync completed",
			"total", stats.Total, "synced", stats.Synced, "skipped", stats.Skipped, "failed", stats.Failed)
	}()

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
