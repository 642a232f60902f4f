package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/domain/actor"
	"github.com/someswar123624/job-portal-backend/internal/http/handlers"
	"github.com/someswar123624/job-portal-backend/internal/http/metrics"
	httpmw "github.com/someswar123624/job-portal-backend/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

// Large enough for a resume upload in the apply form.
const maxBodyBytes = 10 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/students/register":
			r.deps.AuthHandler.RegisterStudent(w, req)
			return
		case req.Method == http.MethodPost && path == "/students/login":
			r.deps.AuthHandler.LoginStudent(w, req)
			return
		case req.Method == http.MethodPost && path == "/students/google-login":
			r.deps.AuthHandler.GoogleLoginStudent(w, req)
			return
		case req.Method == http.MethodPost && path == "/employers/register":
			r.deps.AuthHandler.RegisterEmployer(w, req)
			return
		case req.Method == http.MethodPost && path == "/employers/login":
			r.deps.AuthHandler.LoginEmployer(w, req)
			return
		case req.Method == http.MethodPost && path == "/employers/google-login":
			r.deps.AuthHandler.GoogleLoginEmployer(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/students/") || strings.HasPrefix(path, "/employers/") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/employers/jobs":
		httpmw.RequireRole(actor.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/employers/jobs":
		httpmw.RequireRole(actor.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.ListByEmployer)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/employers/jobs/") && strings.HasSuffix(path, "/applications"):
		httpmw.RequireRole(actor.RoleEmployer)(http.HandlerFunc(r.deps.ApplicationHandler.ListByJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/students/apply/"):
		httpmw.RequireRole(actor.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/students/applications":
		httpmw.RequireRole(actor.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.ListStudent)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/employers/applications":
		httpmw.RequireRole(actor.RoleEmployer)(http.HandlerFunc(r.deps.ApplicationHandler.ListEmployer)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/employers/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(actor.RoleEmployer)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
