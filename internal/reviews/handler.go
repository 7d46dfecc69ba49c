package reviews

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillforge-backend/internal/catalog"
	"skillforge-backend/internal/httpx"
	"skillforge-backend/internal/middleware"
	"skillforge-backend/internal/transport"
	"skillforge-backend/internal/validation"
)

type Handler struct {
	svc *Service
	val *validation.Validator
	log *slog.Logger
}

func NewHandler(svc *Service, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	items, err := h.svc.ListForCourse(r.Context(), slug)
	if err != nil {
		h.writeReviewError(w, log, "reviews list", err)
		return
	}
	log.Info("reviews list: ok", slog.String("slug", slug), slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"reviews": items})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("reviews create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("reviews create: validation error")
		details := httpx.ValidationDetails(h.val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	review, err := h.svc.Create(r.Context(), slug, req)
	if err != nil {
		h.writeReviewError(w, log, "reviews create", err)
		return
	}
	log.Info("reviews create: ok", slog.String("slug", slug), slog.String("review_id", review.ID))
	transport.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handler) writeReviewError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		log.Warn(op + ": course not found")
		transport.WriteError(w, http.StatusNotFound, "course not found", nil)
	case errors.Is(err, catalog.ErrUnavailable):
		log.Error(op+": catalog unavailable", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "catalog temporarily unavailable", nil)
	default:
		log.Error(op+": database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
