package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/layladev/notes-api/internal/auth"
	"github.com/layladev/notes-api/internal/store"
)

// usersAPIHandler provides REST handlers for the caller's own profile.
type usersAPIHandler struct {
	users *store.UserStore
}

// registerUserRoutes registers user profile routes on r.
func registerUserRoutes(r chi.Router, users *store.UserStore) {
	h := &usersAPIHandler{users: users}
	r.Get("/users/me", h.Me)
	r.Put("/users/me", h.UpdateMe)
	r.Delete("/users/me", h.DeleteMe)
}

// Me returns the authenticated caller's profile.
// GET /users/me
//
// @Summary      Get own profile
// @Description  Returns the authenticated user's id, name, email, and creation time.
// @Tags         Users
// @Produce      json
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /users/me [get]
func (h *usersAPIHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateMe changes the caller's name and/or email.
// PUT /users/me
//
// @Summary      Update own profile
// @Description  Updates name and/or email. A token issued before an email change stops validating.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateUserRequest  true  "Fields to update"
// @Success      200   {object}  UserResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /users/me [put]
func (h *usersAPIHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Name == "" && req.Email == "" {
		writeError(w, http.StatusBadRequest, "nothing to update", "BAD_REQUEST")
		return
	}
	if len(req.Name) > 100 {
		writeError(w, http.StatusBadRequest, "name must be at most 100 characters", "BAD_REQUEST")
		return
	}
	if req.Email != "" && !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "email must be a valid email address", "BAD_REQUEST")
		return
	}

	updated, err := h.users.Update(r.Context(), user.ID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered", "EMAIL_TAKEN")
			return
		}
		log.Printf("api: update user %q: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

// DeleteMe removes the caller's account and all of their notes.
// DELETE /users/me
//
// @Summary      Delete own account
// @Description  Deletes the authenticated user and all of their notes.
// @Tags         Users
// @Produce      json
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /users/me [delete]
func (h *usersAPIHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	if err := h.users.Delete(r.Context(), user.ID); err != nil {
		log.Printf("api: delete user %q: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toUserResponse converts a store.User to its API representation.
func toUserResponse(u *store.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
