package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-go/internal/models"
	"portal-go/internal/store"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := Init("sqlite3", dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func newProject(owner, title string, media ...string) *models.Project {
	p := models.NewProject(models.SessionUser{Username: owner, Name: "Name " + owner}, title, "desc", "", "https://github.com/x", "", "", media, time.Now())
	return &p
}

func TestProjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	p := newProject("student1", "Demo", "/uploads/a.png", "/uploads/b.mp4")
	require.NoError(t, database.Append(ctx, p))
	require.NotZero(t, p.ID)

	got, err := database.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Media, got.Media)
	assert.Equal(t, models.DefaultCategory, got.Category)
	assert.Equal(t, models.DefaultMilestone, got.Milestone)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, p.UploadDate, got.UploadDate)
	assert.Equal(t, "Name student1", got.StudentName)
}

func TestListing(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	for _, p := range []*models.Project{
		newProject("student1", "A"),
		newProject("student2", "B"),
		newProject("student1", "C"),
	} {
		require.NoError(t, database.Append(ctx, p))
	}

	all, err := database.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Title)
	assert.Equal(t, "C", all[2].Title)
	assert.NotNil(t, all[0].Media)

	mine, err := database.ListByOwner(ctx, "student2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "B", mine[0].Title)

	none, err := database.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByIDNotFound(t *testing.T) {
	database := openTestDB(t)
	_, err := database.FindByID(context.Background(), 12345)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestInitObservesExistingIDs(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	first, err := Init("sqlite3", dsn, nil)
	require.NoError(t, err)
	defer first.Close()
	p := newProject("student1", "A")
	require.NoError(t, first.Append(ctx, p))

	clock := store.NewIDClock()
	second, err := Init("sqlite3", dsn, clock)
	require.NoError(t, err)
	defer second.Close()
	assert.Greater(t, clock.Next(), p.ID)
}
