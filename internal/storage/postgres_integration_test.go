package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mitrajit-55/password-manager/internal/migrations"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres integration test skipped in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "itdb",
				"POSTGRES_USER":     "ituser",
				"POSTGRES_PASSWORD": "itpass",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://ituser:itpass@%s:%s/itdb?sslmode=disable", host, port.Port())
	ps := NewPostgresStore(dsn)
	require.NoError(t, ps.Initialize(ctx))
	t.Cleanup(func() { _ = ps.Close() })

	t.Run("record CRUD", func(t *testing.T) {
		rec, err := ps.Create(ctx, vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"})
		require.NoError(t, err)
		require.NotEmpty(t, rec.ID)

		records, err := ps.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, rec, records[0])

		modified, err := ps.Update(ctx, rec.ID, vault.Fields{Site: "https://example.com", Username: "alice", Password: "newpass"})
		require.NoError(t, err)
		require.True(t, modified)

		deleted, err := ps.Delete(ctx, rec.ID)
		require.NoError(t, err)
		require.True(t, deleted)
	})

	t.Run("identical update modifies nothing", func(t *testing.T) {
		fields := vault.Fields{Site: "https://other.com", Username: "bob", Password: "hunter2"}
		rec, err := ps.Create(ctx, fields)
		require.NoError(t, err)

		modified, err := ps.Update(ctx, rec.ID, fields)
		require.NoError(t, err)
		require.False(t, modified)

		modified, err = ps.Update(ctx, "no-such-id", fields)
		require.NoError(t, err)
		require.False(t, modified)
	})

	t.Run("delete unknown id reports no match", func(t *testing.T) {
		deleted, err := ps.Delete(ctx, "no-such-id")
		require.NoError(t, err)
		require.False(t, deleted)
	})

	t.Run("migration rollback and version", func(t *testing.T) {
		version, dirty, err := migrations.PostgresVersion(ps.db)
		require.NoError(t, err)
		require.False(t, dirty)
		require.EqualValues(t, 1, version)

		require.NoError(t, migrations.PostgresDown(ps.db, 1))
		version, dirty, err = migrations.PostgresVersion(ps.db)
		require.NoError(t, err)
		require.False(t, dirty)
		require.Zero(t, version)

		// The table is gone until the migrations are re-applied.
		_, err = ps.List(ctx)
		require.Error(t, err)

		require.NoError(t, migrations.PostgresUp(ps.db))
		records, err := ps.List(ctx)
		require.NoError(t, err)
		require.Empty(t, records)
	})
}
