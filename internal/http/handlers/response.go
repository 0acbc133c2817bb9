package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"portal-go/internal/models"
)

// Renderer renders a named HTML page.
type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

// SessionManager starts and ends login sessions.
type SessionManager interface {
	CreateSession(w http.ResponseWriter, r *http.Request, user models.SessionUser) (string, error)
	DestroySession(w http.ResponseWriter, r *http.Request) error
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr sends JSON { "error": message }.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

func internalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func render(w http.ResponseWriter, logger *zap.Logger, views Renderer, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Render(w, page, data); err != nil {
		logger.Error("render page", zap.String("page", page), zap.Error(err))
		internalError(w)
	}
}
