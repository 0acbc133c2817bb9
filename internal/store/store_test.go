package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-go/internal/models"
)

func project(owner, title string) *models.Project {
	p := models.NewProject(models.SessionUser{Username: owner, Name: owner}, title, "", "", "", "", "", nil, time.Now())
	return &p
}

func TestIDClockMonotonic(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	c := &IDClock{now: func() time.Time { return fixed }}

	assert.Equal(t, int64(1_700_000_000_000), c.Next())
	assert.Equal(t, int64(1_700_000_000_001), c.Next())

	c.Observe(1_800_000_000_000)
	assert.Equal(t, int64(1_800_000_000_001), c.Next())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)

	a := project("student1", "A")
	b := project("student2", "B")
	c := project("student1", "C")
	for _, p := range []*models.Project{a, b, c} {
		require.NoError(t, s.Append(ctx, p))
		assert.NotZero(t, p.ID)
	}
	assert.Less(t, a.ID, b.ID)
	assert.Less(t, b.ID, c.ID)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Title, all[1].Title, all[2].Title})

	mine, err := s.ListByOwner(ctx, "student1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "A", mine[0].Title)
	assert.Equal(t, "C", mine[1].Title)

	none, err := s.ListByOwner(ctx, "student3")
	require.NoError(t, err)
	assert.Empty(t, none)

	got, err := s.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, *b, got)

	_, err = s.FindByID(ctx, 42)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)
	p := project("student1", "A")
	p.Media = []string{"/uploads/x.png"}
	require.NoError(t, s.Append(ctx, p))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	all[0].Media[0] = "changed"

	got, err := s.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/x.png", got.Media[0])
}

func TestMemoryStoreConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Append(ctx, project("student1", "P")))
		}()
	}
	wg.Wait()

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 50)
	seen := make(map[int64]bool)
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
}
