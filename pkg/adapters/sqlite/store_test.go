package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/sqlite"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/gateway"
)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(sqlite.Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Key", func(t *testing.T) {
		s := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
		v, found, err := s.Get(ctx, "notes")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, v)
	})

	t.Run("Upsert", func(t *testing.T) {
		s := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
		require.NoError(t, s.Set(ctx, "notes", []byte("one")))
		require.NoError(t, s.Set(ctx, "notes", []byte("two")))

		v, found, err := s.Get(ctx, "notes")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "two", string(v))

		at, found, err := s.UpdatedAt(ctx, "notes")
		require.NoError(t, err)
		assert.True(t, found)
		assert.WithinDuration(t, time.Now(), at, time.Minute)
	})

	t.Run("Empty Value Is Found", func(t *testing.T) {
		s := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
		require.NoError(t, s.Set(ctx, "k", nil))
		_, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("Directory Path Uses Default File", func(t *testing.T) {
		dir := t.TempDir()
		s := openStore(t, dir)
		assert.Equal(t, filepath.Join(dir, sqlite.DefaultFile), s.File())
	})

	t.Run("Persists Across Reopen", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "nested", "kv.db")
		first, err := sqlite.Open(sqlite.Config{Path: file})
		require.NoError(t, err)
		require.NoError(t, first.Set(ctx, "notes", []byte("[]")))
		require.NoError(t, first.Close())

		second := openStore(t, file)
		v, found, err := second.Get(ctx, "notes")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "[]", string(v))
	})

	t.Run("State", func(t *testing.T) {
		s := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
		_ = s.Set(ctx, "k", []byte("v"))
		_, _, _ = s.Get(ctx, "k")

		state := s.State().(sqlite.StoreState)
		assert.Equal(t, int64(1), state.Reads)
		assert.Equal(t, int64(1), state.Writes)
		assert.Equal(t, "sqlite", s.ComponentType())
	})
}

func TestStore_WithNoteStore(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "notes.db")

	kv := openStore(t, file)
	s := core.NewStore(gateway.New(kv, gateway.Config{}), core.StoreConfig{OrderedSaves: true})
	require.NoError(t, s.Initialize(ctx))
	for _, title := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, title, "")
		require.NoError(t, err)
	}
	_, err := s.Delete(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, s.Flush(ctx))

	reloaded := core.NewStore(gateway.New(kv, gateway.Config{}), core.StoreConfig{})
	require.NoError(t, reloaded.Initialize(ctx))
	assert.Equal(t, core.Collection{{ID: 1, Title: "a"}, {ID: 3, Title: "c"}}, reloaded.Notes())
}
