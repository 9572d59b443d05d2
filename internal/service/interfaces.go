package service

import (
	"context"

	"cocial-api/internal/domain"
)

// AuthService defines the authentication gateway operations
type AuthService interface {
	// BeginLogin stores fresh correlation state for one login attempt and
	// returns the provider authorization URL to redirect the browser to.
	BeginLogin(ctx context.Context) (string, error)

	// CompleteLogin consumes the callback's correlation state, turns the
	// authorization code into an identity assertion, provisions the user on
	// first login and returns a freshly minted access token.
	CompleteLogin(ctx context.Context, state, code string) (string, error)

	// Logout processes and revokes the presented token, best effort.
	// It never fails: logout completion must not be blocked.
	Logout(ctx context.Context, token string)
}

// UserStore persists user records keyed by email
type UserStore interface {
	// Create inserts a user; returns repository.ErrEmailTaken when a row
	// with the same email already exists.
	Create(ctx context.Context, user *domain.User) error

	// FindByEmail returns the user with the given email, or nil if absent
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// MessageStore persists message resources
type MessageStore interface {
	List(ctx context.Context) ([]domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	Create(ctx context.Context, m *domain.Message) error
	Update(ctx context.Context, m *domain.Message) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Services aggregates the application services
type Services struct {
	Auth    AuthService
	Message *MessageService
}
