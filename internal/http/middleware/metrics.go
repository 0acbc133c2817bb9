package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"success"},
	)
	projectsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_projects_submitted_total",
		Help: "Projects appended to the project store",
	})
	mediaUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_media_files_uploaded_total",
		Help: "Media files written to the upload directory",
	})
)

// Metrics records request duration labelled by the matched route template.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := wrap(w)
		start := time.Now()
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		httpRequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status())).Observe(time.Since(start).Seconds())
	})
}

func RecordLoginAttempt(success bool) {
	loginAttempts.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func RecordProjectSubmitted(mediaFiles int) {
	projectsSubmitted.Inc()
	mediaUploaded.Add(float64(mediaFiles))
}
