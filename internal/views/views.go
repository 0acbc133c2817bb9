// Package views renders the portal's HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"portal-go/internal/models"
)

//go:embed templates/*.html
var files embed.FS

const (
	Login            = "login.html"
	AdminDashboard   = "admin_dashboard.html"
	StudentDashboard = "student_dashboard.html"
	AddProject       = "add_project.html"
)

type LoginData struct {
	Error string
}

type AdminDashboardData struct {
	User     models.SessionUser
	Projects []models.Project
	Students []string
}

type StudentDashboardData struct {
	User     models.SessionUser
	Projects []models.Project
}

type AddProjectData struct {
	User     models.SessionUser
	MaxMedia int
}

var funcs = template.FuncMap{
	"isImage": func(p string) bool { return hasSuffix(p, ".png", ".jpg", ".jpeg", ".gif", ".webp") },
	"isVideo": func(p string) bool { return hasSuffix(p, ".mp4", ".webm", ".mov") },
}

func hasSuffix(p string, exts ...string) bool {
	p = strings.ToLower(p)
	for _, ext := range exts {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{Login, AdminDashboard, StudentDashboard, AddProject} {
		t, err := template.New(page).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page into w. Output is buffered so a template error never
// leaves a half-written page.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
