package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/layladev/notes-api/internal/store"
	"github.com/layladev/notes-api/internal/testutil"
)

func newNoteFixture(t *testing.T) (*store.NoteStore, *store.User) {
	t.Helper()
	db := testutil.NewTestDB(t)
	users := store.NewUserStore(db)
	notes := store.NewNoteStore(db)

	u, err := users.Create(context.Background(), "Ada", "a@example.com", "digest")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return notes, u
}

func TestNoteStore_CreateAndGet(t *testing.T) {
	notes, u := newNoteFixture(t)
	ctx := context.Background()

	n, err := notes.Create(ctx, u.ID, "Groceries", "milk, eggs")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n.ID == "" {
		t.Fatal("created note has empty ID")
	}
	if n.Archived {
		t.Error("new note is archived")
	}
	if n.OwnerID != u.ID {
		t.Errorf("owner = %q, want %q", n.OwnerID, u.ID)
	}

	got, err := notes.GetByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Groceries" || got.Content != "milk, eggs" {
		t.Errorf("got %q/%q, want Groceries/milk, eggs", got.Title, got.Content)
	}
}

func TestNoteStore_ListByOwner(t *testing.T) {
	notes, u := newNoteFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := notes.Create(ctx, u.ID, "note", "body"); err != nil {
			t.Fatalf("Create: %v", err)
		}
		time.Sleep(2 * time.Millisecond) // distinct created_at for stable paging
	}

	all, err := notes.ListByOwner(ctx, u.ID, nil, time.Time{}, 10)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatal("notes not ordered newest first")
		}
	}

	// Cursor paging: second page excludes the first page and does not overlap.
	page1, err := notes.ListByOwner(ctx, u.ID, nil, time.Time{}, 2)
	if err != nil {
		t.Fatalf("page1: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("page1 len = %d, want 2", len(page1))
	}
	page2, err := notes.ListByOwner(ctx, u.ID, nil, page1[1].CreatedAt, 10)
	if err != nil {
		t.Fatalf("page2: %v", err)
	}
	if len(page2) != 3 {
		t.Fatalf("page2 len = %d, want 3", len(page2))
	}
	seen := map[string]bool{page1[0].ID: true, page1[1].ID: true}
	for _, n := range page2 {
		if seen[n.ID] {
			t.Fatalf("note %q appears on both pages", n.ID)
		}
	}
}

func TestNoteStore_ListArchivedFilter(t *testing.T) {
	notes, u := newNoteFixture(t)
	ctx := context.Background()

	kept, err := notes.Create(ctx, u.ID, "active", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	archivedNote, err := notes.Create(ctx, u.ID, "done", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	tru := true
	if _, err := notes.Update(ctx, archivedNote.ID, store.NoteUpdate{Archived: &tru}); err != nil {
		t.Fatalf("archive: %v", err)
	}

	fals := false
	active, err := notes.ListByOwner(ctx, u.ID, &fals, time.Time{}, 10)
	if err != nil {
		t.Fatalf("ListByOwner active: %v", err)
	}
	if len(active) != 1 || active[0].ID != kept.ID {
		t.Errorf("active list = %d items, want just %q", len(active), kept.ID)
	}

	archived, err := notes.ListByOwner(ctx, u.ID, &tru, time.Time{}, 10)
	if err != nil {
		t.Fatalf("ListByOwner archived: %v", err)
	}
	if len(archived) != 1 || archived[0].ID != archivedNote.ID {
		t.Errorf("archived list = %d items, want just %q", len(archived), archivedNote.ID)
	}
}

func TestNoteStore_Search(t *testing.T) {
	notes, u := newNoteFixture(t)
	ctx := context.Background()

	if _, err := notes.Create(ctx, u.ID, "Shopping List", "apples and oranges"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := notes.Create(ctx, u.ID, "Meeting notes", "discuss SHOPPING budget"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := notes.Create(ctx, u.ID, "Recipe", "pancakes"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := notes.Search(ctx, u.ID, "shopping", time.Time{}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search matched %d notes, want 2 (title and content, case-insensitive)", len(got))
	}

	none, err := notes.Search(ctx, u.ID, "nonexistent", time.Time{}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Search matched %d notes, want 0", len(none))
	}
}

func TestNoteStore_SearchIsScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	users := store.NewUserStore(db)
	notes := store.NewNoteStore(db)
	ctx := context.Background()

	a, err := users.Create(ctx, "Ada", "a@example.com", "digest")
	if err != nil {
		t.Fatalf("seed a: %v", err)
	}
	b, err := users.Create(ctx, "Bob", "b@example.com", "digest")
	if err != nil {
		t.Fatalf("seed b: %v", err)
	}

	if _, err := notes.Create(ctx, a.ID, "secret plans", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := notes.Search(ctx, b.ID, "secret", time.Time{}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Search returned %d of another user's notes, want 0", len(got))
	}
}

func TestNoteStore_Update(t *testing.T) {
	notes, u := newNoteFixture(t)
	ctx := context.Background()

	n, err := notes.Create(ctx, u.ID, "draft", "v1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "final"
	updated, err := notes.Update(ctx, n.ID, store.NoteUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "final" {
		t.Errorf("title = %q, want %q", updated.Title, "final")
	}
	if updated.Content != "v1" {
		t.Errorf("content changed unexpectedly: %q", updated.Content)
	}

	if _, err := notes.Update(ctx, "missing-id", store.NoteUpdate{Title: &title}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update missing: err = %v, want ErrNotFound", err)
	}
}

func TestNoteStore_Delete(t *testing.T) {
	notes, u := newNoteFixture(t)
	ctx := context.Background()

	n, err := notes.Create(ctx, u.ID, "bye", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := notes.Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := notes.GetByID(ctx, n.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID after delete: err = %v, want ErrNotFound", err)
	}
	if err := notes.Delete(ctx, n.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}
