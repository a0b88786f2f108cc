package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/layladev/notes-api/internal/api"
	"github.com/layladev/notes-api/internal/auth"
	"github.com/layladev/notes-api/internal/store"
	"github.com/layladev/notes-api/internal/testutil"
)

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router http.Handler
	Users  *store.UserStore
	Notes  *store.NoteStore
	Tokens *auth.TokenService
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	users := store.NewUserStore(db)
	notes := store.NewNoteStore(db)
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	mw := auth.NewMiddleware(tokens, users)

	router := api.NewRouter(api.Deps{
		AuthMiddleware: mw,
		TokenService:   tokens,
		UserStore:      users,
		NoteStore:      notes,
	})

	return &testEnv{Router: router, Users: users, Notes: notes, Tokens: tokens}
}

// seedUser creates a user with the given password and returns the record.
func seedUser(t *testing.T, env *testEnv, name, email, password string) *store.User {
	t.Helper()
	digest, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := env.Users.Create(context.Background(), name, email, digest)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedToken issues a real token for the given user.
func seedToken(t *testing.T, env *testEnv, u *store.User) string {
	t.Helper()
	token, _, err := env.Tokens.Issue(u.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// doJSON performs a request against the router. A non-empty token is sent as
// a Bearer credential; a non-nil body is JSON-encoded.
func doJSON(t *testing.T, env *testEnv, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
