package auth

import (
	"context"
	"errors"
	"fmt"

	"cocial-api/internal/domain"
	"cocial-api/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// ProviderAdapter abstracts the external identity provider behind the two
// primitives the gateway needs: building the authorization redirect and
// turning a callback code into an identity assertion.
type ProviderAdapter interface {
	// AuthCodeURL builds the provider authorization URL for the given state
	AuthCodeURL(state string) string

	// ResolveProfile exchanges the authorization code and returns the
	// verified identity assertion
	ResolveProfile(ctx context.Context, code string) (*domain.Profile, error)
}

// GoogleProvider implements ProviderAdapter for Google OAuth2.
type GoogleProvider struct {
	conf *oauth2.Config
	log  *logger.Logger

	// endpoint overrides the userinfo API endpoint; tests point it at a
	// local fake, production leaves it empty
	endpoint string
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string, log *logger.Logger) *GoogleProvider {
	return &GoogleProvider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		log: log,
	}
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ResolveProfile exchanges the code for a token and fetches the userinfo
// profile. When the userinfo call fails, it falls back to the claims of the
// id_token that came with the exchange.
func (p *GoogleProvider) ResolveProfile(ctx context.Context, code string) (*domain.Profile, error) {
	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}

	profile, err := p.fetchUserinfo(ctx, tok)
	if err != nil {
		p.log.WithError(err).Warn("Userinfo fetch failed, falling back to id_token claims")
		profile, err = idTokenProfile(tok)
		if err != nil {
			return nil, err
		}
	}

	if profile.Email == "" {
		return nil, errors.New("google profile missing email")
	}

	p.log.WithFields(map[string]interface{}{
		"sub":            profile.Sub,
		"email_verified": profile.EmailVerified,
		"has_name":       profile.Name != "",
	}).Debug("Google profile resolved")

	return profile, nil
}

func (p *GoogleProvider) fetchUserinfo(ctx context.Context, tok *oauth2.Token) (*domain.Profile, error) {
	opts := []option.ClientOption{
		option.WithTokenSource(p.conf.TokenSource(ctx, tok)),
	}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}

	svc, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}

	verified := info.VerifiedEmail != nil && *info.VerifiedEmail

	return &domain.Profile{
		Sub:           info.Id,
		Email:         info.Email,
		EmailVerified: verified,
		Name:          info.Name,
		Picture:       info.Picture,
		Gender:        info.Gender,
		Locale:        info.Locale,
	}, nil
}

// idTokenProfile extracts the identity assertion from the id_token returned
// by the code exchange. The token was received directly from Google's token
// endpoint over TLS, so the claims are read without signature verification.
func idTokenProfile(tok *oauth2.Token) (*domain.Profile, error) {
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return nil, errors.New("google token response missing id_token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id_token: %w", err)
	}

	return &domain.Profile{
		Sub:           stringClaim(claims, "sub"),
		Email:         stringClaim(claims, "email"),
		EmailVerified: boolClaim(claims, "email_verified"),
		Name:          stringClaim(claims, "name"),
		Picture:       stringClaim(claims, "picture"),
		Gender:        stringClaim(claims, "gender"),
		Locale:        stringClaim(claims, "locale"),
	}, nil
}

func stringClaim(m jwt.MapClaims, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func boolClaim(m jwt.MapClaims, key string) bool {
	if val, ok := m[key].(bool); ok {
		return val
	}
	return false
}
