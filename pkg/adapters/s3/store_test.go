package s3_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/s3"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/gateway"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Key", func(t *testing.T) {
		s := s3.TestStore(t, "notes-missing")
		v, found, err := s.Get(ctx, "notes")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, v)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		s := s3.TestStore(t, "notes-roundtrip")
		require.NoError(t, s.Set(ctx, "notes", []byte(`[{"id":1,"title":"a","description":""}]`)))
		require.NoError(t, s.Set(ctx, "notes", []byte(`[]`)))

		v, found, err := s.Get(ctx, "notes")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "[]", string(v))
	})

	t.Run("Prefix", func(t *testing.T) {
		cfg := s3.TestServer(t, "notes-prefix")
		cfg.Prefix = "users/42/"
		s, err := s3.New(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, "users/42/notes.json", s.ObjectKey("notes"))

		require.NoError(t, s.Set(ctx, "notes", []byte("[]")))

		// a store without the prefix does not see the object
		cfg.Prefix = ""
		other, err := s3.New(ctx, cfg)
		require.NoError(t, err)
		_, found, err := other.Get(ctx, "notes")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Missing Bucket Is An Error", func(t *testing.T) {
		cfg := s3.TestServer(t, "notes-exists")
		cfg.Bucket = "notes-absent"
		s, err := s3.New(ctx, cfg)
		require.NoError(t, err)

		_, _, err = s.Get(ctx, "notes")
		assert.Error(t, err)
	})

	t.Run("Requires Bucket", func(t *testing.T) {
		_, err := s3.New(ctx, s3.Config{Region: "us-east-1"})
		assert.Error(t, err)
	})

	t.Run("State", func(t *testing.T) {
		s := s3.TestStore(t, "notes-state")
		_ = s.Set(ctx, "k", []byte("v"))

		state := s.State().(s3.StoreState)
		assert.Equal(t, "notes-state", state.Bucket)
		assert.Equal(t, int64(1), state.Writes)
		assert.Equal(t, "s3", s.ComponentType())
	})
}

func TestStore_WithNoteStore(t *testing.T) {
	ctx := context.Background()
	kv := s3.TestStore(t, "notes-e2e")

	s := core.NewStore(gateway.New(kv, gateway.Config{}), core.StoreConfig{})
	require.NoError(t, s.Initialize(ctx))
	_, err := s.Create(ctx, "Milk", "buy")
	require.NoError(t, err)
	require.NoError(t, s.Flush(ctx))

	reloaded := core.NewStore(gateway.New(kv, gateway.Config{}), core.StoreConfig{})
	require.NoError(t, reloaded.Initialize(ctx))
	assert.Equal(t, core.Collection{{ID: 1, Title: "Milk", Description: "buy"}}, reloaded.Notes())
}
