package api_test

import (
	"net/http"
	"testing"

	"github.com/layladev/notes-api/internal/api"
)

func TestUsers_Me(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "Ada", "a@example.com", "s3cret!")
	token := seedToken(t, env, u)

	rec := doJSON(t, env, "GET", "/users/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp api.UserResponse
	decodeBody(t, rec, &resp)
	if resp.ID != u.ID || resp.Name != "Ada" || resp.Email != "a@example.com" {
		t.Errorf("unexpected profile: %+v", resp)
	}
}

func TestUsers_UpdateMe(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "Ada", "a@example.com", "s3cret!")
	token := seedToken(t, env, u)

	rec := doJSON(t, env, "PUT", "/users/me", token, api.UpdateUserRequest{Name: "Ada Lovelace"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp api.UserResponse
	decodeBody(t, rec, &resp)
	if resp.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want %q", resp.Name, "Ada Lovelace")
	}
	if resp.Email != "a@example.com" {
		t.Errorf("email changed unexpectedly: %q", resp.Email)
	}
}

func TestUsers_UpdateMe_EmailConflict(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "Ada", "a@example.com", "s3cret!")
	seedUser(t, env, "Bob", "b@example.com", "s3cret!")
	token := seedToken(t, env, u)

	rec := doJSON(t, env, "PUT", "/users/me", token, api.UpdateUserRequest{Email: "b@example.com"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var resp api.ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Code != "EMAIL_TAKEN" {
		t.Errorf("code = %q, want EMAIL_TAKEN", resp.Code)
	}
}

func TestUsers_DeleteMe(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "Ada", "a@example.com", "s3cret!")
	token := seedToken(t, env, u)

	rec := doJSON(t, env, "DELETE", "/users/me", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	// The token still decodes, but its subject no longer resolves to an
	// account, so protected routes reject it.
	after := doJSON(t, env, "GET", "/users/me", token, nil)
	if after.Code != http.StatusUnauthorized {
		t.Fatalf("request after account deletion: status = %d, want %d", after.Code, http.StatusUnauthorized)
	}
}
