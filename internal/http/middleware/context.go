package middleware

import (
	"context"

	"portal-go/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// WithUser injects the session user into the context.
func WithUser(ctx context.Context, user models.SessionUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the session user and whether one is present.
func UserFromContext(ctx context.Context) (models.SessionUser, bool) {
	u, ok := ctx.Value(userContextKey).(models.SessionUser)
	return u, ok
}
