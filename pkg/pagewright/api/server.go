package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/gorilla/sessions"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// Server assembles the HTTP API on a chi router.
type Server struct {
	router chi.Router
}

// NewServer builds the full API router. All /api routes require a signed in
// session user; health endpoints stay open.
func NewServer(service pagewright.Service, sessionStore sessions.Store) *Server {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	RoutesHealthz(r)

	filesHandler := NewFilesHandler(service)
	pagesHandler := NewPagesHandler(service)
	sharedHandler := NewSharedContentHandler(service)
	notificationsHandler := NewNotificationsHandler(service)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(SessionAuthMiddleware(sessionStore))
			r.Mount("/files", filesHandler.Routes())
			r.Mount("/pages", pagesHandler.Routes())
			r.Mount("/sharedcontent", sharedHandler.Routes())
			r.Mount("/notifications", notificationsHandler.Routes())
		})
	})

	return &Server{router: r}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RoutesHealthz registers liveness and readiness endpoints
func RoutesHealthz(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})
	r.Get("/healthz/ready", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})
}
