package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"portal-go/internal/http/middleware"
	"portal-go/internal/models"
	"portal-go/internal/store"
	"portal-go/internal/upload"
	"portal-go/internal/views"
)

const (
	StudentsOnlyMessage = "Only students can add projects"
	MediaField          = "media"

	maxMemory = 32 << 20
)

type StudentHandler struct {
	projects store.ProjectStore
	saver    *upload.Saver
	maxMedia int
	views    Renderer
	logger   *zap.Logger
	now      func() time.Time
}

func NewStudentHandler(projects store.ProjectStore, saver *upload.Saver, maxMedia int, views Renderer, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		projects: projects,
		saver:    saver,
		maxMedia: maxMedia,
		views:    views,
		logger:   logger,
		now:      time.Now,
	}
}

// Dashboard lists only the signed-in user's own projects.
func (h *StudentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	projects, err := h.projects.ListByOwner(r.Context(), user.Username)
	if err != nil {
		h.logger.Error("list projects", zap.String("owner", user.Username), zap.Error(err))
		internalError(w)
		return
	}

	render(w, h.logger, h.views, views.StudentDashboard, views.StudentDashboardData{
		User:     user,
		Projects: projects,
	})
}

func (h *StudentHandler) AddProjectForm(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	if !user.IsStudent() {
		http.Error(w, StudentsOnlyMessage, http.StatusForbidden)
		return
	}
	render(w, h.logger, h.views, views.AddProject, views.AddProjectData{User: user, MaxMedia: h.maxMedia})
}

func (h *StudentHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	if !user.IsStudent() {
		http.Error(w, StudentsOnlyMessage, http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	media := []string{}
	if form := r.MultipartForm; form != nil {
		paths, err := h.saver.Save(user.Username, MediaField, form.File[MediaField])
		if errors.Is(err, upload.ErrTooManyFiles) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			h.logger.Error("save uploaded media", zap.String("owner", user.Username), zap.Error(err))
			internalError(w)
			return
		}
		media = paths
	}

	project := models.NewProject(user,
		r.FormValue("title"),
		r.FormValue("description"),
		r.FormValue("category"),
		r.FormValue("github"),
		r.FormValue("liveDemo"),
		r.FormValue("milestone"),
		media,
		h.now(),
	)
	if err := h.projects.Append(r.Context(), &project); err != nil {
		h.logger.Error("append project", zap.String("owner", user.Username), zap.Error(err))
		internalError(w)
		return
	}
	middleware.RecordProjectSubmitted(len(media))

	h.logger.Info("project submitted",
		zap.Int64("id", project.ID),
		zap.String("owner", user.Username),
		zap.Int("media", len(media)),
	)
	http.Redirect(w, r, "/student-dashboard", http.StatusFound)
}
