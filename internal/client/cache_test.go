package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

func TestCacheLoadReplacesContents(t *testing.T) {
	t.Parallel()
	cache := NewCache()
	cache.Load([]vault.Record{{ID: "a"}, {ID: "b"}})
	require.Equal(t, 2, cache.Len())

	cache.Load([]vault.Record{{ID: "c"}})
	require.Equal(t, 1, cache.Len())
	_, ok := cache.Get("a")
	require.False(t, ok)
}

func TestCacheRecordsReturnsCopy(t *testing.T) {
	t.Parallel()
	cache := NewCache()
	cache.Load([]vault.Record{{ID: "a", Fields: validFields()}})

	records := cache.Records()
	records[0].Username = "mallory"

	fresh, ok := cache.Get("a")
	require.True(t, ok)
	require.Equal(t, "alice", fresh.Username)
}

func TestCacheReplaceAppendsWhenAbsent(t *testing.T) {
	t.Parallel()
	cache := NewCache()
	cache.Load([]vault.Record{{ID: "a"}})

	// Replacing a present id keeps its position.
	cache.replace(vault.Record{ID: "a", Fields: validFields()})
	require.Equal(t, 1, cache.Len())

	// An absent id lands at the end instead of being dropped.
	cache.replace(vault.Record{ID: "b"})
	records := cache.Records()
	require.Len(t, records, 2)
	require.Equal(t, "b", records[1].ID)
}

func TestCacheRemoveUnknownIDIsNoop(t *testing.T) {
	t.Parallel()
	cache := NewCache()
	cache.Load([]vault.Record{{ID: "a"}})
	cache.remove("zzz")
	require.Equal(t, 1, cache.Len())
}
