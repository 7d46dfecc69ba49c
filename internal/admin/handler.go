package admin

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"skillforge-backend/internal/catalog"
	"skillforge-backend/internal/httpx"
	"skillforge-backend/internal/middleware"
	"skillforge-backend/internal/transport"
)

type Handler struct {
	store *Store
	log   *slog.Logger
}

func NewHandler(store *Store, log *slog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log,
	}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type pageEnvelope struct {
	Items   interface{} `json:"items"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Size    int         `json:"size"`
	HasNext bool        `json:"hasNext"`
}

func writePage[T any](w http.ResponseWriter, items []T, page, size int) {
	transport.WriteJSON(w, http.StatusOK, pageEnvelope{
		Items:   catalog.Paginate(items, page, size),
		Total:   len(items),
		Page:    page,
		Size:    size,
		HasNext: catalog.HasNext(page, size, len(items)),
	})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, log *slog.Logger, action string, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		log.Warn(action + ": validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(verrs))
	case errors.Is(err, ErrNotFound):
		log.Warn(action + ": not found")
		transport.WriteError(w, http.StatusNotFound, "record not found", nil)
	case errors.Is(err, ErrInvalidStatus):
		log.Warn(action + ": invalid status")
		transport.WriteError(w, http.StatusBadRequest, "invalid status", nil)
	default:
		log.Error(action+": store error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "store error", nil)
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, log *slog.Logger, name string, rows interface{}) {
	var buf bytes.Buffer
	n, err := MarshalCSV(&buf, rows)
	if err != nil {
		log.Error("admin export: csv error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "export error", nil)
		return
	}
	if n == 0 {
		log.Info("admin export: empty set, no file", slog.String("export", name))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	log.Info("admin export: ok", slog.String("export", name), slog.Int("rows", n))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) pageParams(w http.ResponseWriter, r *http.Request, log *slog.Logger, action string) (int, int, bool) {
	page, size, err := httpx.ParsePage(r.URL.Query(), catalog.DefaultPageSize, 100)
	if err != nil {
		log.Warn(action+": invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return 0, 0, false
	}
	return page, size, true
}

// ---- courses ----

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	page, size, ok := h.pageParams(w, r, log, "admin courses list")
	if !ok {
		return
	}

	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	items := Filter(h.store.Courses(), func(c Course) bool {
		if q != "" && !strings.Contains(strings.ToLower(c.Title), q) {
			return false
		}
		if category != "" && c.Category != category {
			return false
		}
		if status != "" && c.Status != status {
			return false
		}
		return true
	})

	log.Info("admin courses list: ok", slog.Int("total", len(items)))
	writePage(w, items, page, size)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var draft CourseDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin course create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	course, err := h.store.CreateCourse(r.Context(), draft)
	if err != nil {
		h.writeStoreError(w, log, "admin course create", err)
		return
	}
	log.Info("admin course create: ok", slog.String("course_id", course.ID))
	transport.WriteJSON(w, http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	var draft CourseDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin course update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	course, err := h.store.UpdateCourse(r.Context(), id, draft)
	if err != nil {
		h.writeStoreError(w, log, "admin course update", err)
		return
	}
	log.Info("admin course update: ok", slog.String("course_id", id))
	transport.WriteJSON(w, http.StatusOK, course)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteCourse(r.Context(), id); err != nil {
		h.writeStoreError(w, log, "admin course delete", err)
		return
	}
	log.Info("admin course delete: ok", slog.String("course_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ExportCourses(w http.ResponseWriter, r *http.Request) {
	h.exportCSV(w, h.logWithRequest(r), "courses", h.store.Courses())
}

// ---- users ----

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	page, size, ok := h.pageParams(w, r, log, "admin users list")
	if !ok {
		return
	}

	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	items := Filter(h.store.Users(), func(u ManagedUser) bool {
		if q != "" && !strings.Contains(strings.ToLower(u.Name+" "+u.Email), q) {
			return false
		}
		if status != "" && u.Status != status {
			return false
		}
		return true
	})

	log.Info("admin users list: ok", slog.Int("total", len(items)))
	writePage(w, items, page, size)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var draft UserDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin user create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	user, err := h.store.CreateUser(r.Context(), draft)
	if err != nil {
		h.writeStoreError(w, log, "admin user create", err)
		return
	}
	log.Info("admin user create: ok", slog.String("user_id", user.ID))
	transport.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	var draft UserDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin user update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	user, err := h.store.UpdateUser(r.Context(), id, draft)
	if err != nil {
		h.writeStoreError(w, log, "admin user update", err)
		return
	}
	log.Info("admin user update: ok", slog.String("user_id", id))
	transport.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		h.writeStoreError(w, log, "admin user delete", err)
		return
	}
	log.Info("admin user delete: ok", slog.String("user_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	var req statusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin user status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	user, err := h.store.SetUserStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeStoreError(w, log, "admin user status", err)
		return
	}
	log.Info("admin user status: ok", slog.String("user_id", id), slog.String("status", req.Status))
	transport.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	h.exportCSV(w, h.logWithRequest(r), "users", h.store.Users())
}

// ---- posts ----

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	page, size, ok := h.pageParams(w, r, log, "admin posts list")
	if !ok {
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	items := Filter(h.store.Posts(), func(p BlogPost) bool {
		return status == "" || p.Status == status
	})

	log.Info("admin posts list: ok", slog.Int("total", len(items)))
	writePage(w, items, page, size)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var draft PostDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin post create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	post, err := h.store.CreatePost(r.Context(), draft)
	if err != nil {
		h.writeStoreError(w, log, "admin post create", err)
		return
	}
	log.Info("admin post create: ok", slog.String("post_id", post.ID))
	transport.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	var draft PostDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin post update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	post, err := h.store.UpdatePost(r.Context(), id, draft)
	if err != nil {
		h.writeStoreError(w, log, "admin post update", err)
		return
	}
	log.Info("admin post update: ok", slog.String("post_id", id))
	transport.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if err := h.store.DeletePost(r.Context(), id); err != nil {
		h.writeStoreError(w, log, "admin post delete", err)
		return
	}
	log.Info("admin post delete: ok", slog.String("post_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) SetPostStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	var req statusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin post status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	post, err := h.store.SetPostStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeStoreError(w, log, "admin post status", err)
		return
	}
	log.Info("admin post status: ok", slog.String("post_id", id), slog.String("status", req.Status))
	transport.WriteJSON(w, http.StatusOK, post)
}

// ---- instructor requests ----

func (h *Handler) ListInstructors(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	page, size, ok := h.pageParams(w, r, log, "admin instructors list")
	if !ok {
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	items := Filter(h.store.Instructors(), func(i InstructorRequest) bool {
		return status == "" || i.Status == status
	})

	log.Info("admin instructors list: ok", slog.Int("total", len(items)))
	writePage(w, items, page, size)
}

func (h *Handler) CreateInstructor(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var draft InstructorDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin instructor create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req, err := h.store.CreateInstructorRequest(r.Context(), draft)
	if err != nil {
		h.writeStoreError(w, log, "admin instructor create", err)
		return
	}
	log.Info("admin instructor create: ok", slog.String("request_id", req.ID))
	transport.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteInstructor(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteInstructorRequest(r.Context(), id); err != nil {
		h.writeStoreError(w, log, "admin instructor delete", err)
		return
	}
	log.Info("admin instructor delete: ok", slog.String("request_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) SetInstructorStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	var req statusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin instructor status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	request, err := h.store.SetInstructorStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeStoreError(w, log, "admin instructor status", err)
		return
	}
	log.Info("admin instructor status: ok", slog.String("request_id", id), slog.String("status", req.Status))
	transport.WriteJSON(w, http.StatusOK, request)
}

// ---- categories ----

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	items := h.store.Categories()
	log.Info("admin categories list: ok", slog.Int("total", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var draft CategoryDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin category create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	category, err := h.store.CreateCategory(r.Context(), draft)
	if err != nil {
		h.writeStoreError(w, log, "admin category create", err)
		return
	}
	log.Info("admin category create: ok", slog.String("category_id", category.ID))
	transport.WriteJSON(w, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	var draft CategoryDraft
	if err := httpx.DecodeJSON(r.Body, &draft); err != nil {
		log.Warn("admin category update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	category, err := h.store.UpdateCategory(r.Context(), id, draft)
	if err != nil {
		h.writeStoreError(w, log, "admin category update", err)
		return
	}
	log.Info("admin category update: ok", slog.String("category_id", id))
	transport.WriteJSON(w, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		h.writeStoreError(w, log, "admin category delete", err)
		return
	}
	log.Info("admin category delete: ok", slog.String("category_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---- transactions ----

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	page, size, ok := h.pageParams(w, r, log, "admin transactions list")
	if !ok {
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	items := Filter(h.store.Transactions(), func(t Transaction) bool {
		return status == "" || t.Status == status
	})

	log.Info("admin transactions list: ok", slog.Int("total", len(items)))
	writePage(w, items, page, size)
}

func (h *Handler) SetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")
	var req statusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin transaction status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	txn, err := h.store.SetTransactionStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeStoreError(w, log, "admin transaction status", err)
		return
	}
	log.Info("admin transaction status: ok", slog.String("transaction_id", id), slog.String("status", req.Status))
	transport.WriteJSON(w, http.StatusOK, txn)
}

func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	h.exportCSV(w, h.logWithRequest(r), "transactions", h.store.Transactions())
}

// ---- activity ----

func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	items := h.store.Activity()
	log.Info("admin activity list: ok", slog.Int("total", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
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
