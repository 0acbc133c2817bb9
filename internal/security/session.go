package security

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"portal-go/internal/models"
)

const (
	SessionCookieName = "portal.sid"
	userKey           = "user"
)

// SessionStore issues and resolves login sessions. The client holds only an
// opaque signed token; the identity snapshot lives server-side and is never
// re-validated against the credential table.
type SessionStore struct {
	store *MemoryStore
}

func NewSessionStore(secret string, maxAge time.Duration) *SessionStore {
	return &SessionStore{store: NewMemoryStore(maxAge, []byte(secret))}
}

// CreateSession starts a session for user and writes the token cookie to w.
func (s *SessionStore) CreateSession(w http.ResponseWriter, r *http.Request, user models.SessionUser) (string, error) {
	// A cookie that fails to decode still yields a fresh session.
	session, _ := s.store.Get(r, SessionCookieName)
	if session.ID != "" {
		// Drop any previous login on this browser.
		s.store.Delete(session.ID)
		session.ID = ""
	}
	session.Values = map[interface{}]interface{}{userKey: user}
	session.Options.MaxAge = s.store.Options.MaxAge
	if err := session.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return session.ID, nil
}

// GetSession resolves the request's session cookie to its user.
func (s *SessionStore) GetSession(r *http.Request) (models.SessionUser, bool) {
	session, err := s.store.New(r, SessionCookieName)
	if err != nil || session.IsNew {
		return models.SessionUser{}, false
	}
	return userFromValues(session.Values)
}

// Resolve looks a raw session token up without going through a request.
func (s *SessionStore) Resolve(token string) (models.SessionUser, bool) {
	values, ok := s.store.Load(token)
	if !ok {
		return models.SessionUser{}, false
	}
	return userFromValues(values)
}

// DestroySession invalidates the request's session and expires its cookie.
// The cookie is cleared even when the stored session cannot be read.
func (s *SessionStore) DestroySession(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.New(r, SessionCookieName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	if saveErr := s.store.Save(r, w, session); saveErr != nil {
		err = errors.Join(err, saveErr)
	}
	if err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration, onPurge func(n int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.PurgeExpired(); n > 0 && onPurge != nil {
				onPurge(n)
			}
		}
	}
}

func userFromValues(values map[interface{}]interface{}) (models.SessionUser, bool) {
	u, ok := values[userKey].(models.SessionUser)
	return u, ok
}
