package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Note struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Archived  bool      `db:"archived"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NoteUpdate carries the optional fields of a note update. Nil pointers leave
// the corresponding column unchanged.
type NoteUpdate struct {
	Title    *string
	Content  *string
	Archived *bool
}

type NoteStore struct {
	db *sqlx.DB
}

func NewNoteStore(db *sqlx.DB) *NoteStore {
	return &NoteStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *NoteStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new note owned by ownerID.
func (s *NoteStore) Create(ctx context.Context, ownerID, title, content string) (*Note, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO notes (id, owner_id, title, content, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), id, ownerID, title, content, false, now, now)
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// GetByID returns the note matching id, or ErrNotFound. Ownership is the
// caller's concern; the handler decides between 404 and 403.
func (s *NoteStore) GetByID(ctx context.Context, id string) (*Note, error) {
	var n Note
	err := s.db.GetContext(ctx, &n, s.q(`SELECT * FROM notes WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByOwner returns up to limit of ownerID's notes, newest first. A non-zero
// before narrows the page to notes created strictly earlier (cursor paging).
// archived, when non-nil, filters on the archived flag.
func (s *NoteStore) ListByOwner(ctx context.Context, ownerID string, archived *bool, before time.Time, limit int) ([]*Note, error) {
	query := `SELECT * FROM notes WHERE owner_id = ?`
	args := []interface{}{ownerID}

	if archived != nil {
		query += ` AND archived = ?`
		args = append(args, *archived)
	}
	if !before.IsZero() {
		query += ` AND created_at < ?`
		args = append(args, before)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	var notes []*Note
	if err := s.db.SelectContext(ctx, &notes, s.q(query), args...); err != nil {
		return nil, err
	}
	return notes, nil
}

// Search returns ownerID's notes whose title or content contains query
// (case-insensitive), newest first, with the same cursor paging as ListByOwner.
func (s *NoteStore) Search(ctx context.Context, ownerID, query string, before time.Time, limit int) ([]*Note, error) {
	stmt := `SELECT * FROM notes WHERE owner_id = ? AND (LOWER(title) LIKE ? OR LOWER(content) LIKE ?)`
	pattern := "%" + strings.ToLower(query) + "%"
	args := []interface{}{ownerID, pattern, pattern}

	if !before.IsZero() {
		stmt += ` AND created_at < ?`
		args = append(args, before)
	}
	stmt += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	var notes []*Note
	if err := s.db.SelectContext(ctx, &notes, s.q(stmt), args...); err != nil {
		return nil, err
	}
	return notes, nil
}

// Update applies the non-nil fields of upd and returns the updated note.
func (s *NoteStore) Update(ctx context.Context, id string, upd NoteUpdate) (*Note, error) {
	n, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.Archived != nil {
		n.Archived = *upd.Archived
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		UPDATE notes SET title = ?, content = ?, archived = ?, updated_at = ? WHERE id = ?
	`), n.Title, n.Content, n.Archived, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes the note. Returns ErrNotFound if it does not exist.
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM notes WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
