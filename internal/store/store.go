// Package store holds submitted projects for the lifetime of the process.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"portal-go/internal/models"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectStore is an append-only sequence of projects. Append assigns the
// project ID; listings are returned in insertion order.
type ProjectStore interface {
	Append(ctx context.Context, p *models.Project) error
	ListAll(ctx context.Context) ([]models.Project, error)
	ListByOwner(ctx context.Context, username string) ([]models.Project, error)
	FindByID(ctx context.Context, id int64) (models.Project, error)
}

// IDClock hands out epoch-millisecond IDs that never repeat: when the clock
// has not advanced past the previous ID, the previous ID plus one is used.
type IDClock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDClock() *IDClock {
	return &IDClock{now: time.Now}
}

func (c *IDClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

// Observe makes sure later IDs are greater than id.
func (c *IDClock) Observe(id int64) {
	c.mu.Lock()
	if id > c.last {
		c.last = id
	}
	c.mu.Unlock()
}

type MemoryStore struct {
	mu       sync.RWMutex
	projects []models.Project
	ids      *IDClock
}

var _ ProjectStore = (*MemoryStore)(nil)

func NewMemoryStore(ids *IDClock) *MemoryStore {
	if ids == nil {
		ids = NewIDClock()
	}
	return &MemoryStore{ids: ids}
}

func (s *MemoryStore) Append(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.ids.Next()
	s.projects = append(s.projects, clone(*p))
	return nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, clone(p))
	}
	return out, nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, username string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Project{}
	for _, p := range s.projects {
		if p.StudentUsername == username {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return clone(p), nil
		}
	}
	return models.Project{}, ErrProjectNotFound
}

func clone(p models.Project) models.Project {
	p.Media = append([]string{}, p.Media...)
	return p
}
