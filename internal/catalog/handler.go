package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"skillforge-backend/internal/httpx"
	"skillforge-backend/internal/middleware"
	"skillforge-backend/internal/transport"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	page, size, err := httpx.ParsePage(r.URL.Query(), DefaultPageSize, 50)
	if err != nil {
		log.Warn("catalog list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	criteria := Criteria{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Level:    strings.TrimSpace(r.URL.Query().Get("level")),
	}
	if criteria.Level != "" && criteria.Level != LevelAll && !IsValidLevel(criteria.Level) {
		log.Warn("catalog list: invalid level", slog.String("level", criteria.Level))
		transport.WriteError(w, http.StatusBadRequest, "invalid level", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.service.Browse(ctx, criteria, page, size)
	if err != nil {
		log.Error("catalog list: fetch error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "catalog temporarily unavailable", nil)
		return
	}

	log.Info("catalog list: ok", slog.Int("count", len(result.Items)), slog.Int("total", result.Total))
	transport.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	h.sortedView(w, r, "catalog popular", h.service.Popular)
}

func (h *Handler) TopRevenue(w http.ResponseWriter, r *http.Request) {
	h.sortedView(w, r, "catalog top revenue", h.service.TopRevenue)
}

func (h *Handler) sortedView(w http.ResponseWriter, r *http.Request, action string, view func(context.Context, int) ([]Course, error)) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := view(ctx, DefaultPageSize)
	if err != nil {
		log.Error(action+": fetch error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "catalog temporarily unavailable", nil)
		return
	}

	log.Info(action+": ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("catalog get: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	course, err := h.service.BySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("catalog get: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "course not found", nil)
			return
		}
		log.Error("catalog get: fetch error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "catalog temporarily unavailable", nil)
		return
	}

	log.Info("catalog get: ok", slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusOK, course)
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
