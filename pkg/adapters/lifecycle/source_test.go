package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/lifecycle"
	"github.com/aretw0/notepad/pkg/adapters/memory"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/gateway"
)

func TestSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := core.NewStore(gateway.New(memory.New(), gateway.Config{}), core.StoreConfig{})
	require.NoError(t, store.Initialize(ctx))

	src := lifecycle.NewSource(store.Watch(ctx))
	require.NoError(t, src.Start(ctx))

	res, err := store.Create(context.Background(), "Milk", "")
	require.NoError(t, err)
	require.NoError(t, res.Save.Wait(context.Background()))

	var got []core.EventType
	timeout := time.After(time.Second)
	for len(got) < 2 {
		select {
		case e := <-src.Events():
			ev, ok := e.(core.Event)
			require.True(t, ok, "unexpected event %T", e)
			got = append(got, ev.Type)
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventSaved}, got)

	cancel()
	closed := time.After(time.Second)
	for {
		select {
		case _, open := <-src.Events():
			if !open {
				return
			}
		case <-closed:
			t.Fatal("source was not closed")
		}
	}
}
