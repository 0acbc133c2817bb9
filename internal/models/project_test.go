package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectDefaults(t *testing.T) {
	owner := SessionUser{Username: "student1", Role: RoleStudent, Name: "Student One"}
	now := time.Date(2024, 3, 7, 10, 11, 12, 345678901, time.UTC)

	p := NewProject(owner, "Demo", "", "", "", "", "", nil, now)

	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, DefaultMilestone, p.Milestone)
	assert.NotNil(t, p.Media)
	assert.Empty(t, p.Media)
	assert.Equal(t, "student1", p.StudentUsername)
	assert.Equal(t, "Student One", p.StudentName)
	assert.Equal(t, now.Local().Format(UploadDateLayout), p.UploadDate)
	assert.Equal(t, time.UTC, p.CreatedAt.Location())
	assert.Equal(t, 345000000, p.CreatedAt.Nanosecond())
}

func TestProjectJSONFieldNames(t *testing.T) {
	p := NewProject(SessionUser{Username: "s"}, "t", "d", "c", "g", "l", "m", []string{"/uploads/a.png"}, time.Unix(0, 0))

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"id", "title", "description", "category", "github", "liveDemo",
		"milestone", "media", "studentUsername", "studentName", "createdAt", "uploadDate"} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, "1970-01-01T00:00:00.000Z", fields["createdAt"])
}

func TestSessionUserDashboard(t *testing.T) {
	assert.Equal(t, "/admin-dashboard", SessionUser{Role: RoleAdmin}.Dashboard())
	assert.Equal(t, "/student-dashboard", SessionUser{Role: RoleStudent}.Dashboard())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("guest")
	assert.Error(t, err)
}

func TestProjectCreatedAtJSON(t *testing.T) {
	owner := SessionUser{Username: "student1", Name: "Student One"}
	tests := []struct {
		millis int64
		want   string
	}{
		{1700000000000, `"2023-11-14T22:13:20.000Z"`},
		{1700000000120, `"2023-11-14T22:13:20.120Z"`},
		{1700000000123, `"2023-11-14T22:13:20.123Z"`},
	}
	for _, tt := range tests {
		p := NewProject(owner, "Demo", "", "", "", "", "", nil, time.UnixMilli(tt.millis))
		p.ID = tt.millis

		raw, err := json.Marshal(p)
		require.NoError(t, err)

		var fields map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &fields))
		assert.Equal(t, tt.want, string(fields["createdAt"]))

		var back Project
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.True(t, p.CreatedAt.Equal(back.CreatedAt))
		assert.Equal(t, p.ID, back.ID)
		assert.Equal(t, p.Title, back.Title)
		assert.Equal(t, p.Media, back.Media)
	}
}

func TestNewProjectUploadDateUsesLocalDate(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	p := NewProject(SessionUser{Username: "s"}, "t", "", "", "", "", "", nil, now)
	assert.Equal(t, now.Local().Format(UploadDateLayout), p.UploadDate)
	assert.Equal(t, "2025-01-01T04:30:00.000Z", p.CreatedAt.Format(CreatedAtLayout))
}
