package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"portal-go/internal/http/middleware"
	"portal-go/internal/security"
	"portal-go/internal/views"
)

const InvalidCredentialsMessage = "Invalid username or password"

type AuthHandler struct {
	creds    security.IdentityLookup
	sessions SessionManager
	views    Renderer
	logger   *zap.Logger
}

func NewAuthHandler(creds security.IdentityLookup, sessions SessionManager, views Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		creds:    creds,
		sessions: sessions,
		views:    views,
		logger:   logger,
	}
}

// Root sends signed-in users to their dashboard and everyone else to /login.
func (h *AuthHandler) Root(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	http.Redirect(w, r, user.Dashboard(), http.StatusFound)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, user.Dashboard(), http.StatusFound)
		return
	}
	render(w, h.logger, h.views, views.Login, views.LoginData{})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")

	user, ok := security.Authenticate(h.creds, username, r.PostForm.Get("password"))
	middleware.RecordLoginAttempt(ok)
	if !ok {
		h.logger.Info("login failed", zap.String("username", username))
		render(w, h.logger, h.views, views.Login, views.LoginData{Error: InvalidCredentialsMessage})
		return
	}

	snapshot := user.Snapshot()
	if _, err := h.sessions.CreateSession(w, r, snapshot); err != nil {
		h.logger.Error("create session", zap.String("username", username), zap.Error(err))
		internalError(w)
		return
	}

	h.logger.Info("login succeeded", zap.String("username", username), zap.String("role", string(user.Role)))
	http.Redirect(w, r, snapshot.Dashboard(), http.StatusFound)
}

// Logout always ends at /login; a failure to tear the session down is only logged.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.DestroySession(w, r); err != nil {
		h.logger.Warn("error destroying session", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
