package enrollments

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"skillforge-backend/internal/middleware"
	"skillforge-backend/internal/transport"
)

type Handler struct {
	repo Repository
	log  *slog.Logger
}

func NewHandler(repo Repository, log *slog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log,
	}
}

// ListByEmail backs the learner dashboard.
func (h *Handler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		log.Warn("enrollments list: missing email")
		transport.WriteError(w, http.StatusBadRequest, "missing email", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.repo.ListByEmail(ctx, email)
	if err != nil {
		log.Error("enrollments list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("enrollments list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
