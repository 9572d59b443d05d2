package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"cocial-api/pkg/redis"
)

// ErrInvalidState is returned when callback state is unknown, expired or
// already consumed.
var ErrInvalidState = errors.New("invalid or expired login state")

const (
	statePrefix = "oauth:state:"
	stateTTL    = 5 * time.Minute
)

// CorrelationStore holds per-attempt login correlation state. Each attempt
// gets its own key, derived from a value round-tripped through the client as
// the OAuth state parameter, so concurrent logins never share a slot.
type CorrelationStore interface {
	// Begin creates correlation state for one login attempt and returns the
	// state value to hand to the client.
	Begin(ctx context.Context) (string, error)

	// Consume validates and discards state exactly once. A second call with
	// the same value fails.
	Consume(ctx context.Context, state string) error
}

// RedisStateStore keeps correlation state in Redis with a short TTL.
type RedisStateStore struct {
	client *redis.Client
}

func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client}
}

func (s *RedisStateStore) Begin(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("state: failed to generate: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	ok, err := s.client.SetNX(ctx, statePrefix+state, time.Now().UTC().Format(time.RFC3339), stateTTL)
	if err != nil {
		return "", fmt.Errorf("state: failed to store: %w", err)
	}
	if !ok {
		// 256-bit collision; practically unreachable
		return "", fmt.Errorf("state: collision")
	}

	return state, nil
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) error {
	if state == "" {
		return ErrInvalidState
	}

	_, err := s.client.GetDel(ctx, statePrefix+state)
	if err == redis.Nil {
		return ErrInvalidState
	}
	if err != nil {
		return fmt.Errorf("state: failed to consume: %w", err)
	}

	return nil
}
