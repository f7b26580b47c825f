package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness reports whether the service can do useful work, which for a
// posting engine means the database answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	status, dbCheck, code := "ok", "ok", http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Warn("readiness: database unreachable", "error", err)
		status, dbCheck, code = "down", "down", http.StatusServiceUnavailable
	}

	RespondJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    map[string]string{"database": dbCheck},
	})
}
