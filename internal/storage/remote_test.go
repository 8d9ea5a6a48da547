package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsched/infras/otel/mocks"
	"medsched/internal/storage"
)

func TestRemoteStore_NotConfigured(t *testing.T) {
	store := storage.NewRemoteStore[note](storage.RemoteOptions{}, mocks.NewOtel())
	store.SetConfigured(false)

	err := store.Save(context.Background(), note{ID: "n1"})

	require.Error(t, err)
	assert.Equal(t, storage.ErrKindConfiguration, storage.KindOf(err))
	assert.False(t, storage.IsRetryable(err))
}

func TestRemoteStore_Unavailable(t *testing.T) {
	store := storage.NewRemoteStore[note](storage.RemoteOptions{}, mocks.NewOtel())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, note{ID: "n1", Body: "kept"}))

	store.SetAvailable(false)

	_, err := store.Load(ctx, "n1")
	require.Error(t, err)
	assert.Equal(t, storage.ErrKindUnavailable, storage.KindOf(err))
	assert.True(t, storage.IsRetryable(err))

	// Data survives the outage.
	store.SetAvailable(true)

	got, err := store.Load(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Body)
}

func TestRemoteStore_ScheduledFaults(t *testing.T) {
	injector := storage.NewScheduleInjector(storage.TimeoutFault(), nil, storage.TimeoutFault())
	store := storage.NewRemoteStore[note](storage.RemoteOptions{Injector: injector}, mocks.NewOtel())
	ctx := context.Background()

	err := store.Save(ctx, note{ID: "n1"})
	require.Error(t, err)
	assert.Equal(t, storage.ErrKindTimeout, storage.KindOf(err))
	assert.True(t, storage.IsRetryable(err))

	// The failed save must not have committed.
	require.NoError(t, store.Save(ctx, note{ID: "n1"}))

	_, err = store.Load(ctx, "n1")
	assert.Equal(t, storage.ErrKindTimeout, storage.KindOf(err))

	// Schedule exhausted: calls succeed from here on.
	_, err = store.Load(ctx, "n1")
	assert.NoError(t, err)
}

func TestRemoteStore_RandomInjectorIsDeterministic(t *testing.T) {
	run := func() []bool {
		store := storage.NewRemoteStore[note](storage.RemoteOptions{
			Injector: storage.NewRandomInjector(42, 0.3),
		}, mocks.NewOtel())

		outcomes := make([]bool, 0, 50)
		for i := 0; i < 50; i++ {
			_, err := store.LoadAll(context.Background())
			outcomes = append(outcomes, err == nil)
		}

		return outcomes
	}

	first := run()
	second := run()

	assert.Equal(t, first, second)

	failures := 0
	for _, ok := range first {
		if !ok {
			failures++
		}
	}
	assert.Greater(t, failures, 0)
	assert.Less(t, failures, 50)
}

func TestRemoteStore_ProtectedDelete(t *testing.T) {
	store := storage.NewRemoteStore[note](storage.RemoteOptions{
		ProtectedIDs: []string{"ROOM001"},
	}, mocks.NewOtel())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, note{ID: "ROOM001"}))
	require.NoError(t, store.Save(ctx, note{ID: "n2"}))

	err := store.Delete(ctx, "ROOM001")
	require.Error(t, err)
	assert.Equal(t, storage.ErrKindIntegrity, storage.KindOf(err))
	assert.False(t, storage.IsRetryable(err))

	// The protected row is still there; unprotected rows delete normally.
	_, err = store.Load(ctx, "ROOM001")
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, "n2"))
}

func TestRemoteStore_DuplicateSave(t *testing.T) {
	store := storage.NewRemoteStore[note](storage.RemoteOptions{}, mocks.NewOtel())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, note{ID: "n1"}))

	err := store.Save(ctx, note{ID: "n1"})
	assert.True(t, storage.IsAlreadyExists(err))
}

func TestRemoteStore_Latency(t *testing.T) {
	store := storage.NewRemoteStore[note](storage.RemoteOptions{
		Latency: 20 * time.Millisecond,
	}, mocks.NewOtel())

	start := time.Now()
	_, err := store.LoadAll(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
