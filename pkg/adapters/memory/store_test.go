package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Key", func(t *testing.T) {
		s := New()
		v, found, err := s.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, v)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Set(ctx, "k", []byte("v1")))
		require.NoError(t, s.Set(ctx, "k", []byte("v2")))

		v, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v2", string(v))
	})

	t.Run("Values Are Copied", func(t *testing.T) {
		s := New()
		in := []byte("abc")
		require.NoError(t, s.Set(ctx, "k", in))
		in[0] = 'x'

		out, _, _ := s.Get(ctx, "k")
		assert.Equal(t, "abc", string(out))
		out[0] = 'y'

		again, _, _ := s.Get(ctx, "k")
		assert.Equal(t, "abc", string(again))
	})

	t.Run("Injected Failures", func(t *testing.T) {
		s := New()
		getErr, setErr := errors.New("get"), errors.New("set")
		s.FailWith(getErr, setErr)

		_, _, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, getErr)
		assert.ErrorIs(t, s.Set(ctx, "k", nil), setErr)

		s.FailWith(nil, nil)
		assert.NoError(t, s.Set(ctx, "k", nil))
	})

	t.Run("Latency Respects Context", func(t *testing.T) {
		s := New()
		s.SetLatency(func(string, []byte) time.Duration { return time.Hour })

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		err := s.Set(cctx, "k", []byte("v"))
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		_, found := s.Raw("k")
		assert.False(t, found)
	})

	t.Run("State", func(t *testing.T) {
		s := New()
		_ = s.Set(ctx, "a", nil)
		_, _, _ = s.Get(ctx, "a")
		_, _, _ = s.Get(ctx, "b")

		assert.Equal(t, StoreState{Keys: 1, Gets: 2, Sets: 1}, s.State())
		assert.Equal(t, "memory", s.ComponentType())
	})
}
