// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/okian/webbasics/pkg/logger"
)

// Renderer executes a named page template. Implementations must write nothing when
// rendering fails so the handler can still send an error status.
type Renderer interface {
	Render(w io.Writer, name string, data map[string]any) error
}

// Server wires HTTP routes for the site.
type Server struct {
	pageHandler   *PageHandler
	aboutHandler  *AboutHandler
	dataHandler   *DataHandler
	formHandler   *FormHandler
	healthHandler *HealthHandler

	log            logger.Logger
	debug          bool
	liveReloadPath string
	liveReload     http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithDebug exposes panic values and template errors in 500 responses.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// WithLiveReload mounts the browser reload socket at path.
func WithLiveReload(path string, h http.Handler) Option {
	return func(s *Server) {
		s.liveReloadPath = path
		s.liveReload = h
	}
}

// NewServer creates a new server with all handlers.
func NewServer(renderer Renderer, opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}

	s.pageHandler = NewPageHandler(renderer, s.log, s.debug)
	s.aboutHandler = NewAboutHandler()
	s.dataHandler = NewDataHandler()
	s.formHandler = NewFormHandler(s.log)
	s.healthHandler = NewHealthHandler()
	return s
}

// NewRouter returns a router with method-exclusive matching: a known path requested
// with the wrong method gets 405 and an Allow header, an unknown path gets 404.
// Trailing-slash and case variants are not redirected.
func NewRouter() *httprouter.Router {
	r := httprouter.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.HandleMethodNotAllowed = true
	r.HandleOPTIONS = true
	r.NotFound = MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	}, "unmatched")
	r.MethodNotAllowed = MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	}, "unmatched")
	return r
}

type route struct {
	method   string
	path     string
	endpoint string
	handler  http.HandlerFunc
}

func (s *Server) routes() []route {
	return []route{
		{http.MethodGet, "/", "home", s.pageHandler.HandleHome},
		{http.MethodGet, "/about", "about", s.aboutHandler.HandleAbout},
		{http.MethodGet, "/data", "data", s.dataHandler.HandleData},
		{http.MethodGet, "/form", "form", s.pageHandler.HandleForm},
		{http.MethodPost, "/form", "form", s.formHandler.HandlePostForm},
		{http.MethodGet, "/form-get", "form_get", s.pageHandler.HandleFormGet},
		{http.MethodGet, "/form-get-result", "form_get_result", s.formHandler.HandleGetResult},
		{http.MethodGet, "/healthz", "healthz", s.healthHandler.HandleHealth},
		{http.MethodGet, "/metrics", "metrics", s.healthHandler.HandleMetrics},
	}
}

// Register attaches all routes to router. GET routes also answer HEAD.
func (s *Server) Register(_ context.Context, router *httprouter.Router) {
	if router == nil {
		panic("router is nil")
	}

	for _, rt := range s.routes() {
		h := MetricsMiddleware(rt.handler, rt.endpoint)
		router.Handler(rt.method, rt.path, h)
		if rt.method == http.MethodGet {
			router.Handler(http.MethodHead, rt.path, h)
		}
	}

	if s.liveReload != nil && s.liveReloadPath != "" {
		router.Handler(http.MethodGet, s.liveReloadPath, s.liveReload)
	}
}

// Wrap applies the process-wide middleware. Recoverer sits innermost so the access
// log still records the 500 it writes.
func (s *Server) Wrap(h http.Handler) http.Handler {
	return Chain(h,
		RequestID(),
		AccessLog(s.log),
		Recoverer(s.log, s.debug),
	)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends a plain text error. detail is appended to the status text when non-empty.
func writeError(w http.ResponseWriter, status int, detail string) {
	msg := http.StatusText(status)
	if detail != "" {
		msg += ": " + detail
	}
	writeText(w, status, msg)
}
