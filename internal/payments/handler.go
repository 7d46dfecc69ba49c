package payments

import (
	"errors"
	"log/slog"
	"net/http"

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

type orderRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type verifyRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}
	order, err := h.svc.CreateOrder(r.Context(), req.CourseID, req.Email)
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}
	enr, err := h.svc.Verify(r.Context(), req.OrderID, req.PaymentID, req.Signature, req.CourseID, req.Email)
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, enr)
}

func (h *Handler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotConfigured):
		transport.WriteError(w, http.StatusServiceUnavailable, "payments not configured", nil)
	case errors.Is(err, catalog.ErrNotFound):
		transport.WriteError(w, http.StatusNotFound, "course not found", nil)
	case errors.Is(err, ErrVerification):
		transport.WriteError(w, http.StatusPaymentRequired, "payment verification failed", nil)
	case errors.Is(err, ErrDuplicate):
		transport.WriteError(w, http.StatusConflict, "order already recorded", nil)
	default:
		h.logWithRequest(r).Error("checkout failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "checkout temporarily unavailable", nil)
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
