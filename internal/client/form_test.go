package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

func newFormFixture(t *testing.T, removeOnEdit bool) (*fakeStore, *Cache, *notices, *FormController) {
	t.Helper()
	store := &fakeStore{}
	cache := NewCache()
	n := &notices{}
	coord := NewCoordinator(store, cache, nil, n)
	return store, cache, n, NewFormController(coord, cache, removeOnEdit)
}

func TestCommitRejectsShortFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, cache, n, form := newFormFixture(t, false)

	form.SetFields(vault.Fields{Site: "abc", Username: "alice", Password: "s3cret"})
	err := form.Commit(ctx)
	require.ErrorIs(t, err, vault.ErrInvalidFields)
	require.Equal(t, "Please fill all fields properly!", n.last())

	// A rejected draft never reaches the store, and it survives for the
	// user to correct.
	require.Zero(t, store.createCalls)
	require.Zero(t, store.updateCalls)
	require.Zero(t, cache.Len())
	require.Equal(t, "abc", form.Draft().Site)
}

func TestCommitCreateResetsDraft(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, cache, n, form := newFormFixture(t, false)

	form.SetFields(validFields())
	require.NoError(t, form.Commit(ctx))

	require.Equal(t, 1, store.createCalls)
	require.Equal(t, 1, cache.Len())
	require.Equal(t, "Password saved!", n.last())
	require.Equal(t, Draft{}, form.Draft())
	require.Equal(t, ModeCreate, form.Mode())
}

func TestBeginEditBindsIDAndEditPreservesIt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, cache, _, form := newFormFixture(t, false)

	rec, err := store.Create(ctx, validFields())
	require.NoError(t, err)
	cache.Load([]vault.Record{rec})

	require.True(t, form.BeginEdit(ctx, rec.ID))
	require.Equal(t, ModeEdit, form.Mode())
	require.Equal(t, rec.ID, form.Draft().ID)
	// The record stays in the visible list while being edited.
	require.Equal(t, 1, cache.Len())

	fields := validFields()
	fields.Password = "newpass"
	form.SetFields(fields)
	require.NoError(t, form.Commit(ctx))

	records := cache.Records()
	require.Len(t, records, 1)
	require.Equal(t, rec.ID, records[0].ID)
	require.Equal(t, "newpass", records[0].Password)
	require.Equal(t, ModeCreate, form.Mode())
}

func TestBeginEditMissingIDIsNoop(t *testing.T) {
	t.Parallel()
	_, _, _, form := newFormFixture(t, false)
	require.False(t, form.BeginEdit(context.Background(), "nope"))
	require.Equal(t, ModeCreate, form.Mode())
}

func TestLocalVariantEditDropsAndRecreates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, cache, _, form := newFormFixture(t, true)

	rec, err := store.Create(ctx, validFields())
	require.NoError(t, err)
	cache.Load([]vault.Record{rec})

	// Entering edit mode silently removes the record from both the
	// store and the visible list; the draft stays unbound.
	require.True(t, form.BeginEdit(ctx, rec.ID))
	require.Equal(t, ModeCreate, form.Mode())
	require.Empty(t, form.Draft().ID)
	require.Zero(t, cache.Len())
	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, records)

	// Committing re-creates the record under a fresh id.
	require.NoError(t, form.Commit(ctx))
	records, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotEqual(t, rec.ID, records[0].ID)
	require.Equal(t, rec.Fields, records[0].Fields)
}

func TestLocalVariantAbandonedEditLosesRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, cache, _, form := newFormFixture(t, true)

	rec, err := store.Create(ctx, validFields())
	require.NoError(t, err)
	cache.Load([]vault.Record{rec})

	require.True(t, form.BeginEdit(ctx, rec.ID))
	form.Reset()

	// Nothing brings the record back.
	require.Zero(t, cache.Len())
	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestMaskToggleLeavesDraftAlone(t *testing.T) {
	t.Parallel()
	_, _, _, form := newFormFixture(t, false)

	require.True(t, form.Masked())
	form.SetFields(validFields())

	form.ToggleMask()
	require.False(t, form.Masked())
	require.Equal(t, validFields(), form.Draft().Fields)

	form.ToggleMask()
	require.True(t, form.Masked())

	// Reset clears the draft but keeps the visibility choice.
	form.ToggleMask()
	form.Reset()
	require.False(t, form.Masked())
}
