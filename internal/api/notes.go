package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/layladev/notes-api/internal/auth"
	"github.com/layladev/notes-api/internal/metrics"
	"github.com/layladev/notes-api/internal/store"
)

// notesAPIHandler provides REST handlers for note management. Every endpoint
// operates on the authenticated caller's notes only.
type notesAPIHandler struct {
	notes *store.NoteStore
}

// registerNoteRoutes registers note routes on r.
// NOTE: /notes/search must be registered before /notes/{id} so chi does not
// treat "search" as an id.
func registerNoteRoutes(r chi.Router, notes *store.NoteStore) {
	h := &notesAPIHandler{notes: notes}
	r.Get("/notes/search", h.Search)
	r.Get("/notes", h.List)
	r.Post("/notes", h.Create)
	r.Get("/notes/{id}", h.Get)
	r.Put("/notes/{id}", h.Update)
	r.Delete("/notes/{id}", h.Delete)
}

// Create creates a new note owned by the caller.
// POST /notes
//
// @Summary      Create a note
// @Description  Creates a new note owned by the authenticated user.
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        body  body      CreateNoteRequest  true  "Note to create"
// @Success      201   {object}  NoteResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /notes [post]
func (h *notesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required", "BAD_REQUEST")
		return
	}
	if len(req.Title) > 200 {
		writeError(w, http.StatusBadRequest, "title must be at most 200 characters", "BAD_REQUEST")
		return
	}

	note, err := h.notes.Create(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		log.Printf("api: create note for %q: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.NotesCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

// List returns the caller's notes, newest first, with cursor pagination and
// an optional archived filter.
// GET /notes?archived=&cursor=&limit=
//
// @Summary      List notes
// @Description  Returns the authenticated user's notes, newest first.
// @Tags         Notes
// @Produce      json
// @Param        archived  query  bool    false  "Filter by archived state"
// @Param        cursor    query  string  false  "Opaque pagination cursor"
// @Param        limit     query  int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  NoteListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /notes [get]
func (h *notesAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	cursor, limit := parsePagination(r)

	var archived *bool
	if a := r.URL.Query().Get("archived"); a != "" {
		parsed, err := strconv.ParseBool(a)
		if err != nil {
			writeError(w, http.StatusBadRequest, "archived must be true or false", "BAD_REQUEST")
			return
		}
		archived = &parsed
	}

	notes, err := h.notes.ListByOwner(r.Context(), user.ID, archived, decodeCursor(cursor), limit)
	if err != nil {
		log.Printf("api: list notes for %q: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, toNoteListResponse(notes, limit))
}

// Search returns the caller's notes matching the query in title or content.
// GET /notes/search?query=&cursor=&limit=
//
// @Summary      Search notes
// @Description  Searches the authenticated user's notes by title or content.
// @Tags         Notes
// @Produce      json
// @Param        query   query  string  true   "Text to search for"
// @Param        cursor  query  string  false  "Opaque pagination cursor"
// @Param        limit   query  int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  NoteListResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /notes/search [get]
func (h *notesAPIHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required", "BAD_REQUEST")
		return
	}
	cursor, limit := parsePagination(r)

	notes, err := h.notes.Search(r.Context(), user.ID, query, decodeCursor(cursor), limit)
	if err != nil {
		log.Printf("api: search notes for %q: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, toNoteListResponse(notes, limit))
}

// Get returns a single note. 404 when it does not exist, 403 when it exists
// but belongs to someone else.
// GET /notes/{id}
//
// @Summary      Get a note
// @Description  Returns a note by ID. Only the owner may access it.
// @Tags         Notes
// @Produce      json
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  NoteResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /notes/{id} [get]
func (h *notesAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, ok := h.ownedNote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// Update modifies a note's title, content, or archived flag.
// PUT /notes/{id}
//
// @Summary      Update a note
// @Description  Updates title, content, or archived state. Only the owner may update.
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Note ID"
// @Param        body  body      UpdateNoteRequest  true  "Fields to update"
// @Success      200   {object}  NoteResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /notes/{id} [put]
func (h *notesAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	note, ok := h.ownedNote(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Title != nil && *req.Title == "" {
		writeError(w, http.StatusBadRequest, "title must not be blank", "BAD_REQUEST")
		return
	}
	if req.Title != nil && len(*req.Title) > 200 {
		writeError(w, http.StatusBadRequest, "title must be at most 200 characters", "BAD_REQUEST")
		return
	}

	updated, err := h.notes.Update(r.Context(), note.ID, store.NoteUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Archived: req.Archived,
	})
	if err != nil {
		log.Printf("api: update note %q: %v", note.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(updated))
}

// Delete removes a note.
// DELETE /notes/{id}
//
// @Summary      Delete a note
// @Description  Deletes a note by ID. Only the owner may delete it.
// @Tags         Notes
// @Produce      json
// @Param        id   path  string  true  "Note ID"
// @Success      204  "No Content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /notes/{id} [delete]
func (h *notesAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	note, ok := h.ownedNote(w, r)
	if !ok {
		return
	}

	if err := h.notes.Delete(r.Context(), note.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedNote loads the note from the URL and enforces ownership: 404 when the
// note does not exist, 403 when it belongs to another user. The distinction
// tells the owner of a note that it exists while still denying access.
func (h *notesAPIHandler) ownedNote(w http.ResponseWriter, r *http.Request) (*store.Note, bool) {
	user := auth.UserFromContext(r.Context())

	note, err := h.notes.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "note not found", "NOT_FOUND")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return nil, false
	}

	if note.OwnerID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden", "FORBIDDEN")
		return nil, false
	}
	return note, true
}

// toNoteResponse converts a store.Note to its API representation.
func toNoteResponse(n *store.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Archived:  n.Archived,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// toNoteListResponse builds the page response; a next cursor is present only
// when the page is full.
func toNoteListResponse(notes []*store.Note, limit int) NoteListResponse {
	resp := NoteListResponse{Notes: make([]NoteResponse, 0, len(notes))}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	if len(notes) == limit && limit > 0 {
		c := encodeCursor(notes[len(notes)-1].CreatedAt)
		resp.NextCursor = &c
	}
	return resp
}
