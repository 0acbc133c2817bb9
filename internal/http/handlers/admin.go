package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"portal-go/internal/http/middleware"
	"portal-go/internal/models"
	"portal-go/internal/security"
	"portal-go/internal/store"
	"portal-go/internal/views"
)

const ProjectNotFoundMessage = "Project not found"

type AdminHandler struct {
	projects  store.ProjectStore
	directory security.Directory
	views     Renderer
	logger    *zap.Logger
}

func NewAdminHandler(projects store.ProjectStore, directory security.Directory, views Renderer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{projects: projects, directory: directory, views: views, logger: logger}
}

// Dashboard lists every project in submission order together with the
// known student accounts.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	projects, err := h.projects.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list projects", zap.Error(err))
		internalError(w)
		return
	}

	render(w, h.logger, h.views, views.AdminDashboard, views.AdminDashboardData{
		User:     user,
		Projects: projects,
		Students: h.directory.UsernamesByRole(models.RoleStudent),
	})
}

func (h *AdminHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseLeadingInt(mux.Vars(r)["id"])
	if !ok {
		writeErr(w, http.StatusNotFound, ProjectNotFoundMessage)
		return
	}

	project, err := h.projects.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrProjectNotFound) {
		writeErr(w, http.StatusNotFound, ProjectNotFoundMessage)
		return
	}
	if err != nil {
		h.logger.Error("find project", zap.Int64("id", id), zap.Error(err))
		writeErr(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// parseLeadingInt reads an optionally signed run of leading decimal digits,
// ignoring anything after it: "123abc" is 123, "abc" is not a number.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
