package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cocial-api/internal/domain"
	"cocial-api/pkg/redis"
)

// ErrInvalidToken is returned for any presented token that was not minted by
// this store: missing, malformed, expired, tampered or revoked all look the
// same to the caller.
var ErrInvalidToken = errors.New("invalid token")

const keyPrefix = "token:"

// tokenBytes is the amount of randomness per token: 256 bits
const tokenBytes = 32

// Store mints opaque access tokens and resolves them back to identities.
type Store interface {
	// Issue mints a fresh token bound to the identity. Tokens carry no
	// structure; two tokens for the same identity are unlinkable.
	Issue(ctx context.Context, identity domain.Identity) (string, error)

	// Resolve returns the identity a token was minted for, or ErrInvalidToken.
	Resolve(ctx context.Context, token string) (*domain.Identity, error)

	// Revoke invalidates a token. Revoking an unknown token is not an error.
	Revoke(ctx context.Context, token string) error
}

// RedisStore keeps token-to-identity bindings in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Issue(ctx context.Context, identity domain.Identity) (string, error) {
	tok, err := generate()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("token: failed to marshal identity: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+tok, data, s.ttl); err != nil {
		return "", fmt.Errorf("token: failed to store token: %w", err)
	}

	return tok, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	val, err := s.client.Get(ctx, keyPrefix+token)
	if err == redis.Nil {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("token: failed to resolve token: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return nil, fmt.Errorf("token: failed to unmarshal identity: %w", err)
	}

	return &identity, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Delete(ctx, keyPrefix+token)
}

// generate produces a cryptographically random, URL-safe opaque token
func generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("token: failed to generate: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
