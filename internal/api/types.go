package api

import "time"

// --- Auth types ---

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a freshly issued token. ExpiresIn is the token
// lifetime in seconds.
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// --- Note types ---

// CreateNoteRequest is the request body for POST /notes.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest is the request body for PUT /notes/{id}. Nil fields are
// left unchanged; a blank title is rejected.
type UpdateNoteRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}

// NoteResponse is the JSON representation of a single note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteListResponse is the paginated response for note list endpoints.
type NoteListResponse struct {
	Notes      []NoteResponse `json:"notes"`
	NextCursor *string        `json:"next_cursor"`
}

// --- User types ---

// UpdateUserRequest is the request body for PUT /users/me. Empty fields are
// left unchanged.
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserResponse is the JSON representation of a user profile. The password
// hash is never serialized.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
