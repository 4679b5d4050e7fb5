package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"skillbase/internal/contextutil"
	"skillbase/internal/vectorstore"
)

// HealthHandler reports the health of the API and its dependencies.
type HealthHandler struct {
	db          *sql.DB
	store       vectorstore.VectorStore
	collections []string
	timeout     time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, store vectorstore.VectorStore, collections []string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		store:       store,
		collections: collections,
		timeout:     5 * time.Second,
	}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	logger := contextutil.LoggerFromContext(ctx)

	checks := map[string]string{"database": "ok", "vector_store": "ok"}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		checks["database"] = "error"
		healthy = false
	}

	for _, collection := range h.collections {
		exists, err := h.store.CollectionExists(ctx, collection)
		if err != nil || !exists {
			logger.WarnContext(ctx, "vector store health check failed",
				"collection", collection, "error", err)
			checks["vector_store"] = "error"
			healthy = false
			break
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, Envelope{
		Success: healthy,
		Data: HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Checks:    checks,
		},
	})
}
