package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/layladev/notes-api/internal/auth"
	"github.com/layladev/notes-api/internal/build"
	"github.com/layladev/notes-api/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	AuthMiddleware *auth.Middleware
	TokenService   *auth.TokenService
	UserStore      *store.UserStore
	NoteStore      *store.NoteStore
}

// NewRouter assembles the full chi router.
//
// Authenticate runs on every request before any handler; it only establishes
// (or leaves absent) the caller's identity. Whether a route requires that
// identity is decided per route group with RequireUser, so public routes keep
// working no matter what garbage a client puts in the Authorization header.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(deps.AuthMiddleware.Authenticate)

	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(jsonContentType)

		// Public: token issuance.
		registerAuthRoutes(r, deps.UserStore, deps.TokenService)

		// Protected: everything below requires an authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			registerNoteRoutes(r, deps.NoteStore)
			registerUserRoutes(r, deps.UserStore)
		})
	})

	return r
}

// healthz reports liveness and the running build.
func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": build.Version,
	})
}

// jsonContentType is a middleware that sets Content-Type: application/json on
// all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
