package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-go/internal/models"
)

func TestRender(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	user := models.SessionUser{Username: "student1", Role: models.RoleStudent, Name: "Student One"}
	p := models.NewProject(user, "<Demo>", "", "", "", "", "", []string{"/uploads/x.png"}, time.Now())

	t.Run("login error", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, Login, LoginData{Error: "Invalid username or password"}))
		assert.Contains(t, buf.String(), "Invalid username or password")
	})

	t.Run("student dashboard escapes titles", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, StudentDashboard, StudentDashboardData{User: user, Projects: []models.Project{p}}))
		assert.Contains(t, buf.String(), "&lt;Demo&gt;")
		assert.Contains(t, buf.String(), `<img src="/uploads/x.png"`)
	})

	t.Run("admin dashboard lists students", func(t *testing.T) {
		var buf bytes.Buffer
		admin := models.SessionUser{Username: "admin", Role: models.RoleAdmin, Name: "Administrator"}
		require.NoError(t, r.Render(&buf, AdminDashboard, AdminDashboardData{User: admin, Students: []string{"student1", "student2"}}))
		assert.Contains(t, buf.String(), "student1, student2")
	})

	t.Run("add project form", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, AddProject, AddProjectData{User: user, MaxMedia: 5}))
		assert.Contains(t, buf.String(), `name="media" multiple`)
	})

	t.Run("unknown page", func(t *testing.T) {
		assert.Error(t, r.Render(&bytes.Buffer{}, "missing.html", nil))
	})
}
