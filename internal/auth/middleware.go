package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/layladev/notes-api/internal/metrics"
	"github.com/layladev/notes-api/internal/store"
)

type contextKey string

const userContextKey contextKey = "user"

// Middleware authenticates requests from bearer tokens.
type Middleware struct {
	tokens *TokenService
	users  *store.UserStore
}

// NewMiddleware creates a new auth Middleware.
func NewMiddleware(ts *TokenService, us *store.UserStore) *Middleware {
	return &Middleware{tokens: ts, users: us}
}

// Authenticate extracts a token from "Authorization: Bearer <token>", resolves
// its subject against the user store, and on full validation puts the
// *store.User on the request context.
//
// Every failure mode (missing or malformed header, bad signature, expired
// token, unknown subject, cancelled store lookup) degrades to "no
// authenticated user" and the request continues. Public routes are therefore
// unaffected by stale or garbage credentials. Enforcement is RequireUser's
// job, not this one's.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		subject, err := m.tokens.ExtractSubject(token)
		if err != nil {
			metrics.TokenValidationsTotal.WithLabelValues(validationResult(err)).Inc()
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetByEmail(r.Context(), subject)
		if err != nil {
			// Unknown subject, or the lookup was cancelled or timed out.
			// Fail closed either way.
			metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
			next.ServeHTTP(w, r)
			return
		}

		if !m.tokens.IsValid(token, user.Email) {
			metrics.TokenValidationsTotal.WithLabelValues("subject_mismatch").Inc()
			next.ServeHTTP(w, r)
			return
		}

		metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests that carry no authenticated user with a 401
// JSON body. Must be mounted after Authenticate.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext retrieves the authenticated user from the context, or nil.
func UserFromContext(ctx context.Context) *store.User {
	u, _ := ctx.Value(userContextKey).(*store.User)
	return u
}

// writeUnauthorized writes a 401 JSON response.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "code": "UNAUTHORIZED"})
}

// validationResult buckets a token decode error for the metrics counter.
func validationResult(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	default:
		return "malformed"
	}
}
