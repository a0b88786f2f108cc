package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"

	"github.com/go-chi/chi/v5"
	"github.com/layladev/notes-api/internal/auth"
	"github.com/layladev/notes-api/internal/metrics"
	"github.com/layladev/notes-api/internal/store"
)

// authAPIHandler provides the public registration and login endpoints.
type authAPIHandler struct {
	users  *store.UserStore
	tokens *auth.TokenService
}

// registerAuthRoutes registers auth routes on r. These are the only routes
// that issue tokens; everything else only consumes them.
func registerAuthRoutes(r chi.Router, users *store.UserStore, tokens *auth.TokenService) {
	h := &authAPIHandler{users: users, tokens: tokens}
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
}

// Register creates a new account and returns a freshly issued token.
// POST /auth/register
//
// @Summary      Register a user
// @Description  Creates a new user and returns a bearer token.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Account to create"
// @Success      201   {object}  AuthResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *authAPIHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
		return
	}
	if len(req.Name) > 100 {
		writeError(w, http.StatusBadRequest, "name must be at most 100 characters", "BAD_REQUEST")
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "email must be a valid email address", "BAD_REQUEST")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters", "BAD_REQUEST")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered", "EMAIL_TAKEN")
			return
		}
		log.Printf("api: register %q: %v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	token, expiresIn, err := h.tokens.Issue(user.Email)
	if err != nil {
		log.Printf("api: issue token for %q: %v", user.Email, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.RegistrationsTotal.Inc()
	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, ExpiresIn: expiresIn})
}

// Login verifies credentials and returns a freshly issued token. Unknown
// email and wrong password produce the same response.
// POST /auth/login
//
// @Summary      Log in
// @Description  Verifies email and password and returns a bearer token.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  AuthResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *authAPIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required", "BAD_REQUEST")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			writeInvalidCredentials(w)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		writeInvalidCredentials(w)
		return
	}

	token, expiresIn, err := h.tokens.Issue(user.Email)
	if err != nil {
		log.Printf("api: issue token for %q: %v", user.Email, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, AuthResponse{Token: token, ExpiresIn: expiresIn})
}

// validEmail reports whether s parses as a bare RFC 5322 address.
func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
