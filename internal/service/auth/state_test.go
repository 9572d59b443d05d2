package auth

import (
	"context"
	"testing"
	"time"

	"cocial-api/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupStateStore(t *testing.T) (*miniredis.Miniredis, *RedisStateStore) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), zap.NewNop())
	require.NoError(t, err)

	return mr, NewRedisStateStore(client)
}

func TestStateStore_ConsumeOnce(t *testing.T) {
	_, store := setupStateStore(t)
	ctx := context.Background()

	state, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, state)

	require.NoError(t, store.Consume(ctx, state))

	// Consumed exactly once; replay is rejected
	assert.ErrorIs(t, store.Consume(ctx, state), ErrInvalidState)
}

func TestStateStore_RejectsUnknownState(t *testing.T) {
	_, store := setupStateStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Consume(ctx, "never-issued"), ErrInvalidState)
	assert.ErrorIs(t, store.Consume(ctx, ""), ErrInvalidState)
}

func TestStateStore_ConcurrentAttemptsAreIsolated(t *testing.T) {
	_, store := setupStateStore(t)
	ctx := context.Background()

	// Two concurrent login attempts from different browsers
	stateA, err := store.Begin(ctx)
	require.NoError(t, err)
	stateB, err := store.Begin(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, stateA, stateB)

	// Completing attempt A does not complete or invalidate attempt B
	require.NoError(t, store.Consume(ctx, stateA))
	require.NoError(t, store.Consume(ctx, stateB))
}

func TestStateStore_Expiry(t *testing.T) {
	mr, store := setupStateStore(t)
	ctx := context.Background()

	state, err := store.Begin(ctx)
	require.NoError(t, err)

	mr.FastForward(stateTTL + time.Minute)

	assert.ErrorIs(t, store.Consume(ctx, state), ErrInvalidState)
}
