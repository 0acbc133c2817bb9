package middleware

import (
	"net/http"

	"portal-go/internal/models"
)

const AdminDeniedMessage = "Access Denied: Admin privileges required"

// SessionResolver maps a request to the user of its session.
type SessionResolver interface {
	GetSession(r *http.Request) (models.SessionUser, bool)
}

// LoadSession puts the session user, if any, into the request context. It
// never rejects a request.
func LoadSession(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := sessions.GetSession(r); ok {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects to /login when the request carries no session user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 403 unless the session user is an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			http.Error(w, AdminDeniedMessage, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
