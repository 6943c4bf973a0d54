package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdhq/taskd/internal/taskd/service"
	"github.com/taskdhq/taskd/internal/taskd/store"
	"github.com/taskdhq/taskd/pkg/httpx"
	"github.com/taskdhq/taskd/pkg/jwtx"
	"github.com/taskdhq/taskd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	TaskService *service.TaskService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTasks()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /v1/auth/signup", &SignupHandler{Auth: r.AuthService})
	r.Mux.Handle("POST /v1/auth/signin", &SigninHandler{Auth: r.AuthService})
}

func (r *Router) registerTasks() {
	h := &TasksHandler{Tasks: r.TaskService}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("POST /v1/tasks", httpx.Chain(http.HandlerFunc(h.Create), authn))
	r.Mux.Handle("GET /v1/tasks", httpx.Chain(http.HandlerFunc(h.List), authn))
	r.Mux.Handle("GET /v1/tasks/{id}", httpx.Chain(http.HandlerFunc(h.Get), authn))
	r.Mux.Handle("PATCH /v1/tasks/{id}/status", httpx.Chain(http.HandlerFunc(h.UpdateStatus), authn))
	r.Mux.Handle("DELETE /v1/tasks/{id}", httpx.Chain(http.HandlerFunc(h.Delete), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
