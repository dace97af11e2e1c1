package store

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/db"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Backend) {
	t.Helper()
	ctx := context.Background()

	first, err := s.Add(ctx, viennaDesigner("Anna"))
	require.NoError(t, err)
	second, err := s.Add(ctx, viennaDesigner("Ben"))
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)
	require.Equal(t, second.ID, list[1].ID)
	require.Equal(t, first.Coords, list[0].Coords)
	require.Equal(t, first.DisplayAddress, list[0].DisplayAddress)
	require.True(t, first.CreatedAt.Equal(list[0].CreatedAt))

	require.NoError(t, s.Remove(ctx, first.ID))
	require.ErrorIs(t, s.Remove(ctx, first.ID), domain.ErrNotFound)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, second.ID, list[0].ID)
}

func TestSQLiteStore(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "designers.db"))
	require.NoError(t, err)
	defer conn.Close()

	s := NewSQLStore(conn, SQLite)
	require.NoError(t, s.Init())
	require.NoError(t, s.Init())

	exerciseStore(t, s)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.OpenPostgres(url)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(`DROP TABLE IF EXISTS designers`)
	require.NoError(t, err)

	s := NewSQLStore(conn, Postgres)
	require.NoError(t, s.Init())

	exerciseStore(t, s)
}

func TestSQLStoreNilDB(t *testing.T) {
	s := NewSQLStore(nil, SQLite)
	_, err := s.List(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreFailure)
}

func TestDialectParams(t *testing.T) {
	require.Equal(t, "?, ?, ?", SQLite.params(3))
	require.Equal(t, "$1, $2, $3", Postgres.params(3))
}
