package storage

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Skipf("miniredis unavailable: %v", err)
	}
	t.Cleanup(mr.Close)

	rs := NewRedisStore(mr.Addr(), "", 0, "pwtest:")
	require.NoError(t, rs.Initialize(context.Background()))
	t.Cleanup(func() { _ = rs.Close() })
	return rs
}

func TestRedisStoreCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := newTestRedisStore(t)

	records, err := rs.List(ctx)
	require.NoError(t, err)
	require.Empty(t, records)

	first, err := rs.Create(ctx, vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	second, err := rs.Create(ctx, vault.Fields{Site: "https://other.com", Username: "bob", Password: "hunter2"})
	require.NoError(t, err)

	// The index list preserves insertion order.
	records, err = rs.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, first.ID, records[0].ID)
	require.Equal(t, second.ID, records[1].ID)

	modified, err := rs.Update(ctx, first.ID, vault.Fields{Site: "https://example.com", Username: "alice", Password: "newpass"})
	require.NoError(t, err)
	require.True(t, modified)

	records, err = rs.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "newpass", records[0].Password)

	deleted, err := rs.Delete(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	records, err = rs.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, first.ID, records[0].ID)
}

func TestRedisStoreUpdateReportsNoChange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := newTestRedisStore(t)

	fields := vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"}
	rec, err := rs.Create(ctx, fields)
	require.NoError(t, err)

	modified, err := rs.Update(ctx, rec.ID, fields)
	require.NoError(t, err)
	require.False(t, modified)

	modified, err = rs.Update(ctx, "no-such-id", fields)
	require.NoError(t, err)
	require.False(t, modified)
}

func TestRedisStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := newTestRedisStore(t)

	rec, err := rs.Create(ctx, vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	deleted, err := rs.Delete(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = rs.Delete(ctx, rec.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}
