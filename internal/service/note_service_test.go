package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"notes-api/internal/dto"
	"notes-api/internal/pkg/apperror"
	"notes-api/internal/repository/specification"
	"notes-api/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNoteEmbedsTag(t *testing.T) {
	f := newFixture(t, 0)
	alice := f.register(t, "Alice", "alice@example.com")
	work := f.tag(t, "Work")

	note := f.note(t, alice.User.Id, work.Id, "Hello")

	assert.NotZero(t, note.Id)
	assert.Equal(t, alice.User.Id, note.UserId)
	assert.Equal(t, work.Id, note.TagId)
	require.NotNil(t, note.Tag)
	assert.Equal(t, "Work", note.Tag.Name)
	require.NotNil(t, note.Text)
	assert.Equal(t, "Hello", *note.Text)
	assert.NotEmpty(t, note.CreatedAt)

	assert.Contains(t, f.publisher.types(), events.TypeNoteCreated)
}

func TestCreateNoteWithoutText(t *testing.T) {
	f := newFixture(t, 0)
	alice := f.register(t, "Alice", "alice@example.com")
	work := f.tag(t, "Work")

	note, err := f.notes.Create(context.Background(), alice.User.Id, &dto.CreateNoteRequest{TagId: &work.Id})
	require.NoError(t, err)
	assert.Nil(t, note.Text)
}

func TestCreateNoteValidation(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	work := f.tag(t, "Work")

	t.Run("missing tag", func(t *testing.T) {
		_, err := f.notes.Create(ctx, alice.User.Id, &dto.CreateNoteRequest{Text: ptr("x")})
		fields := fieldErrors(t, err)
		assert.Equal(t, []string{"Un tag doit être associé à la note."}, fields["tag_id"])
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := f.notes.Create(ctx, alice.User.Id, &dto.CreateNoteRequest{Text: ptr("x"), TagId: ptr(uint(99999))})
		fields := fieldErrors(t, err)
		assert.Equal(t, []string{"Le tag associé à la création de la note n'existe pas."}, fields["tag_id"])
	})

	t.Run("text too long", func(t *testing.T) {
		_, err := f.notes.Create(ctx, alice.User.Id, &dto.CreateNoteRequest{Text: ptr(strings.Repeat("a", 65536)), TagId: &work.Id})
		fields := fieldErrors(t, err)
		assert.Equal(t, []string{"Le texte de la note ne peut pas dépasser 65535 caractères."}, fields["text"])
	})

	assert.Zero(t, f.countNotes(t), "rejected notes are never persisted")
}

func TestListIsScopedAndOrdered(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	work := f.tag(t, "Work")
	home := f.tag(t, "Home")

	older := f.note(t, alice.User.Id, work.Id, "older")
	time.Sleep(5 * time.Millisecond)
	newer := f.note(t, alice.User.Id, home.Id, "newer")
	f.note(t, bob.User.Id, work.Id, "bob's")

	notes, err := f.notes.List(ctx, alice.User.Id)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, newer.Id, notes[0].Id)
	assert.Equal(t, older.Id, notes[1].Id)
	for _, n := range notes {
		assert.Equal(t, alice.User.Id, n.UserId)
		require.NotNil(t, n.Tag)
		assert.Equal(t, n.TagId, n.Tag.Id)
	}

	// Touching the older note moves it to the front.
	time.Sleep(5 * time.Millisecond)
	_, err = f.notes.Update(ctx, alice.User.Id, older.Id, &dto.UpdateNoteRequest{Text: dto.OptionalText{Present: true, Value: ptr("edited")}})
	require.NoError(t, err)

	notes, err = f.notes.List(ctx, alice.User.Id)
	require.NoError(t, err)
	assert.Equal(t, older.Id, notes[0].Id)
}

func TestListEmpty(t *testing.T) {
	f := newFixture(t, 0)
	alice := f.register(t, "Alice", "alice@example.com")

	notes, err := f.notes.List(context.Background(), alice.User.Id)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestUpdateNote(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	work := f.tag(t, "Work")
	home := f.tag(t, "Home")
	note := f.note(t, alice.User.Id, work.Id, "original")

	t.Run("absent text keeps it", func(t *testing.T) {
		updated, err := f.notes.Update(ctx, alice.User.Id, note.Id, &dto.UpdateNoteRequest{TagId: &home.Id})
		require.NoError(t, err)
		assert.Equal(t, home.Id, updated.TagId)
		assert.Equal(t, "Home", updated.Tag.Name)
		require.NotNil(t, updated.Text)
		assert.Equal(t, "original", *updated.Text)
	})

	t.Run("null text clears it", func(t *testing.T) {
		updated, err := f.notes.Update(ctx, alice.User.Id, note.Id, &dto.UpdateNoteRequest{Text: dto.OptionalText{Present: true}})
		require.NoError(t, err)
		assert.Nil(t, updated.Text)
		assert.Equal(t, home.Id, updated.TagId)
		require.NotNil(t, updated.Tag)
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := f.notes.Update(ctx, alice.User.Id, note.Id, &dto.UpdateNoteRequest{TagId: ptr(uint(99999))})
		fields := fieldErrors(t, err)
		assert.Equal(t, []string{"The selected tag id is invalid."}, fields["tag_id"])
	})

	t.Run("bumps updated_at", func(t *testing.T) {
		uow := f.uowFactory.NewUnitOfWork(ctx)
		before, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		_, err = f.notes.Update(ctx, alice.User.Id, note.Id, &dto.UpdateNoteRequest{})
		require.NoError(t, err)

		after, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
		assert.Equal(t, before.CreatedAt.Unix(), after.CreatedAt.Unix())
	})

	assert.Contains(t, f.publisher.types(), events.TypeNoteUpdated)
}

func TestForeignNotesAreNotFound(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	bob := f.register(t, "Bob", "bob@example.com")
	work := f.tag(t, "Work")
	note := f.note(t, alice.User.Id, work.Id, "private")

	_, err := f.notes.Update(ctx, bob.User.Id, note.Id, &dto.UpdateNoteRequest{Text: dto.OptionalText{Present: true, Value: ptr("hijack")}})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = f.notes.Delete(ctx, bob.User.Id, note.Id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	notes, err := f.notes.List(ctx, alice.User.Id)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "private", *notes[0].Text)
}

func TestDeleteNote(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	alice := f.register(t, "Alice", "alice@example.com")
	work := f.tag(t, "Work")
	note := f.note(t, alice.User.Id, work.Id, "bye")

	require.NoError(t, f.notes.Delete(ctx, alice.User.Id, note.Id))
	assert.Zero(t, f.countNotes(t))

	err := f.notes.Delete(ctx, alice.User.Id, note.Id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = f.notes.Update(ctx, alice.User.Id, note.Id, &dto.UpdateNoteRequest{})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	assert.Contains(t, f.publisher.types(), events.TypeNoteDeleted)
}
