package security

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

type memEntry struct {
	values  map[interface{}]interface{}
	expires time.Time
}

// MemoryStore is a server-side sessions.Store. The cookie carries only the
// signed session ID; values stay in process memory until expiry or deletion.
type MemoryStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	mu   sync.RWMutex
	data map[string]memEntry
	now  func() time.Time
}

var _ sessions.Store = (*MemoryStore)(nil)

func NewMemoryStore(maxAge time.Duration, keyPairs ...[]byte) *MemoryStore {
	s := &MemoryStore{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(maxAge / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		data: make(map[string]memEntry),
		now:  time.Now,
	}
	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(s.Options.MaxAge)
		}
	}
	return s
}

func (s *MemoryStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *MemoryStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, errCookie := r.Cookie(name)
	if errCookie != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.Codecs...); err != nil {
		return session, err
	}
	if values, ok := s.Load(id); ok {
		session.ID = id
		session.Values = values
		session.IsNew = false
	}
	return session, nil
}

// Save stores the session values and writes the ID cookie. A non-positive
// MaxAge deletes the server-side entry and expires the cookie.
func (s *MemoryStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge <= 0 {
		if session.ID != "" {
			s.Delete(session.ID)
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}

	values := make(map[interface{}]interface{}, len(session.Values))
	for k, v := range session.Values {
		values[k] = v
	}
	s.mu.Lock()
	s.data[session.ID] = memEntry{
		values:  values,
		expires: s.now().Add(time.Duration(session.Options.MaxAge) * time.Second),
	}
	s.mu.Unlock()

	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// Load returns a copy of the values stored under id, if present and unexpired.
func (s *MemoryStore) Load(id string) (map[interface{}]interface{}, bool) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expires) {
		return nil, false
	}
	values := make(map[interface{}]interface{}, len(e.values))
	for k, v := range e.values {
		values[k] = v
	}
	return values, true
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}

// PurgeExpired drops every expired entry and returns how many were removed.
func (s *MemoryStore) PurgeExpired() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.data {
		if !now.Before(e.expires) {
			delete(s.data, id)
			n++
		}
	}
	return n
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
