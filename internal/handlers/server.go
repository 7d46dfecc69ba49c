package handlers

import (
	"log/slog"
	"net/http"

	"skillforge-backend/internal/auth"
	"skillforge-backend/internal/config"
	"skillforge-backend/internal/db"
	"skillforge-backend/internal/middleware"
	"skillforge-backend/internal/validation"
)

// Server carries the dependencies of the back-office account handlers.
type Server struct {
	Cfg     *config.Config
	Cols    *db.Collections
	Val     *validation.Validator
	Log     *slog.Logger
	Manager *auth.Manager
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
