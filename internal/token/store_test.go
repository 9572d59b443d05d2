package token

import (
	"context"
	"testing"
	"time"

	"cocial-api/internal/domain"
	"cocial-api/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), zap.NewNop())
	require.NoError(t, err)

	return mr, NewRedisStore(client, time.Hour)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	identity := domain.Identity{UserID: "u-1", Email: "ann@example.com", Name: "Ann"}

	tok, err := store.Issue(ctx, identity)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	resolved, err := store.Resolve(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, identity, *resolved)
}

func TestRedisStore_NoTokenReuse(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	identity := domain.Identity{UserID: "u-1", Email: "ann@example.com"}

	first, err := store.Issue(ctx, identity)
	require.NoError(t, err)
	second, err := store.Issue(ctx, identity)
	require.NoError(t, err)

	// Fresh randomness per mint: same identity, unlinkable tokens
	assert.NotEqual(t, first, second)

	// Both remain independently valid
	for _, tok := range []string{first, second} {
		resolved, err := store.Resolve(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, "u-1", resolved.UserID)
	}
}

func TestRedisStore_RejectsUnmintedTokens(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	minted, err := store.Issue(ctx, domain.Identity{UserID: "u-1", Email: "ann@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "truncated minted token", token: minted[:len(minted)-4]},
		{name: "altered minted token", token: "A" + minted[1:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := store.Resolve(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, resolved)
		})
	}
}

func TestRedisStore_Revoke(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	tok, err := store.Issue(ctx, domain.Identity{UserID: "u-1", Email: "ann@example.com"})
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, tok))

	_, err = store.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Revoking again, or revoking the unknown, is not an error
	assert.NoError(t, store.Revoke(ctx, tok))
	assert.NoError(t, store.Revoke(ctx, ""))
}

func TestRedisStore_Expiry(t *testing.T) {
	mr, store := setupTestStore(t)
	ctx := context.Background()

	tok, err := store.Issue(ctx, domain.Identity{UserID: "u-1", Email: "ann@example.com"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Resolve(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
