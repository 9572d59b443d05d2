package auth

import (
	"context"
	"errors"
	"fmt"

	"cocial-api/internal/domain"
	"cocial-api/internal/repository"
	"cocial-api/internal/service"
	"cocial-api/internal/token"
	"cocial-api/pkg/logger"

	"github.com/google/uuid"
)

// Service is the authentication gateway: it mediates the provider redirect
// handshake and turns a successful identity assertion into a local access
// token, provisioning the user record on first login.
type Service struct {
	provider ProviderAdapter
	states   CorrelationStore
	users    service.UserStore
	tokens   token.Store
	log      *logger.Logger
}

func NewService(provider ProviderAdapter, states CorrelationStore, users service.UserStore, tokens token.Store, log *logger.Logger) service.AuthService {
	return &Service{
		provider: provider,
		states:   states,
		users:    users,
		tokens:   tokens,
		log:      log,
	}
}

func (s *Service) BeginLogin(ctx context.Context) (string, error) {
	state, err := s.states.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin login: %w", err)
	}
	return s.provider.AuthCodeURL(state), nil
}

func (s *Service) CompleteLogin(ctx context.Context, state, code string) (string, error) {
	if err := s.states.Consume(ctx, state); err != nil {
		return "", err
	}

	if code == "" {
		return "", errors.New("callback missing authorization code")
	}

	profile, err := s.provider.ResolveProfile(ctx, code)
	if err != nil {
		return "", err
	}

	user, err := s.provision(ctx, profile)
	if err != nil {
		return "", err
	}

	tok, err := s.tokens.Issue(ctx, domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		return "", err
	}

	s.log.WithFields(map[string]interface{}{
		"user_id": user.ID,
	}).Info("Login completed")

	return tok, nil
}

// provision returns the user for the asserted email, creating the record on
// first login. Profile attributes are copied from the assertion once and
// never refreshed on later logins.
func (s *Service) provision(ctx context.Context, profile *domain.Profile) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &domain.User{
		ID:      uuid.NewString() + profile.Email,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
		Gender:  profile.Gender,
		Locale:  profile.Locale,
	}

	err = s.users.Create(ctx, user)
	if err == nil {
		s.log.WithField("user_id", user.ID).Info("User provisioned on first login")
		return user, nil
	}

	if !errors.Is(err, repository.ErrEmailTaken) {
		return nil, err
	}

	// Lost the first-login race for this email; the winning row is the user
	user, err = s.users.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user for %q vanished after duplicate-email conflict", profile.Email)
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, tok string) {
	if tok == "" {
		return
	}

	// Audit the presented token before revoking it; neither step may block
	// logout completion.
	if identity, err := s.tokens.Resolve(ctx, tok); err == nil {
		s.log.WithField("user_id", identity.UserID).Info("Logout")
	}

	if err := s.tokens.Revoke(ctx, tok); err != nil {
		s.log.WithError(err).Warn("Failed to revoke token on logout")
	}
}
