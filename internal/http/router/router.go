package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"portal-go/internal/http/handlers"
	"portal-go/internal/http/middleware"
	"portal-go/internal/security"
	"portal-go/internal/store"
	"portal-go/internal/upload"
)

type Deps struct {
	Credentials security.Directory
	Sessions    *security.SessionStore
	Projects    store.ProjectStore
	Uploads     *upload.Saver
	MaxMedia    int
	Views       handlers.Renderer
	Logger      *zap.Logger
}

func Setup(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.LoadSession(d.Sessions))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Metrics)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d.Credentials, d.Sessions, d.Views, d.Logger)
	adminHandler := handlers.NewAdminHandler(d.Projects, d.Credentials, d.Views, d.Logger)
	studentHandler := handlers.NewStudentHandler(d.Projects, d.Uploads, d.MaxMedia, d.Views, d.Logger)

	auth := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(middleware.RequireAdmin(h))
	}

	r.HandleFunc("/", authHandler.Root).Methods("GET")
	r.HandleFunc("/login", authHandler.LoginPage).Methods("GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	r.Handle("/admin-dashboard", admin(adminHandler.Dashboard)).Methods("GET")
	r.Handle("/api/project/{id}", admin(adminHandler.GetProject)).Methods("GET")

	r.Handle("/student-dashboard", auth(studentHandler.Dashboard)).Methods("GET")
	r.Handle("/add-project", auth(studentHandler.AddProjectForm)).Methods("GET")
	r.Handle("/add-project", auth(studentHandler.AddProject)).Methods("POST")

	r.HandleFunc("/health", handlers.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.PathPrefix(upload.PublicPrefix).Handler(http.StripPrefix(upload.PublicPrefix, http.FileServer(http.Dir(d.Uploads.Dir()))))

	return r
}
