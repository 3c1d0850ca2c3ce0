package alarms

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSQLiteRepository_NotFound verifies Load on a fresh database returns ErrNotFound.
func TestSQLiteRepository_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	repo, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "alarms.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, repo.Close())
	})

	list, err := repo.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, list)
}

// TestSQLiteRepository_SaveLoadRoundtrip ensures the sqlite backend matches the file backend semantics.
func TestSQLiteRepository_SaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	repo, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "alarms.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, repo.Close())
	})

	want := sampleAlarms()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// Second save replaces the document under the same key.
	require.NoError(t, repo.Save(ctx, want[:1]))

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want[:1], got)
}
