package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"cocial-api/pkg/logger"
)

func testGoogleProvider(t *testing.T) *GoogleProvider {
	t.Helper()
	return NewGoogleProvider("test-client-id", "test-client-secret", "https://example.com/oauth2/callback", &logger.Logger{Logger: zap.NewNop()})
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	p := testGoogleProvider(t)

	authURL := p.AuthCodeURL("test-state-token")

	assert.Contains(t, authURL, "accounts.google.com")
	assert.Contains(t, authURL, "client_id=test-client-id")
	assert.Contains(t, authURL, "state=test-state-token")
	assert.Contains(t, authURL, "userinfo.email")
}

// fakeTokenServer mocks the provider token endpoint for the code exchange
func fakeTokenServer(t *testing.T, idToken string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		response := map[string]any{
			"access_token": "test-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		}
		if idToken != "" {
			response["id_token"] = idToken
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
}

func TestGoogleProvider_ResolveProfile(t *testing.T) {
	t.Run("resolves profile from userinfo", func(t *testing.T) {
		tokenServer := fakeTokenServer(t, "")
		defer tokenServer.Close()

		userinfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"id":             "sub-123",
				"email":          "ann@example.com",
				"verified_email": true,
				"name":           "Ann",
				"picture":        "https://example.com/ann.png",
				"gender":         "female",
				"locale":         "en",
			})
		}))
		defer userinfoServer.Close()

		p := testGoogleProvider(t)
		p.conf.Endpoint = oauth2.Endpoint{TokenURL: tokenServer.URL}
		p.endpoint = userinfoServer.URL

		profile, err := p.ResolveProfile(context.Background(), "test-code")
		require.NoError(t, err)

		assert.Equal(t, "sub-123", profile.Sub)
		assert.Equal(t, "ann@example.com", profile.Email)
		assert.True(t, profile.EmailVerified)
		assert.Equal(t, "Ann", profile.Name)
		assert.Equal(t, "https://example.com/ann.png", profile.Picture)
		assert.Equal(t, "female", profile.Gender)
		assert.Equal(t, "en", profile.Locale)
	})

	t.Run("falls back to id_token claims when userinfo fails", func(t *testing.T) {
		idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":            "sub-123",
			"email":          "ann@example.com",
			"email_verified": true,
			"name":           "Ann",
			"locale":         "en",
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)

		tokenServer := fakeTokenServer(t, idToken)
		defer tokenServer.Close()

		userinfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusInternalServerError)
		}))
		defer userinfoServer.Close()

		p := testGoogleProvider(t)
		p.conf.Endpoint = oauth2.Endpoint{TokenURL: tokenServer.URL}
		p.endpoint = userinfoServer.URL

		profile, err := p.ResolveProfile(context.Background(), "test-code")
		require.NoError(t, err)

		assert.Equal(t, "sub-123", profile.Sub)
		assert.Equal(t, "ann@example.com", profile.Email)
		assert.True(t, profile.EmailVerified)
		assert.Equal(t, "Ann", profile.Name)
		assert.Equal(t, "en", profile.Locale)
	})

	t.Run("fails when exchange is rejected", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		}))
		defer tokenServer.Close()

		p := testGoogleProvider(t)
		p.conf.Endpoint = oauth2.Endpoint{TokenURL: tokenServer.URL}

		_, err := p.ResolveProfile(context.Background(), "bad-code")
		assert.Error(t, err)
	})

	t.Run("fails when neither userinfo nor id_token is available", func(t *testing.T) {
		tokenServer := fakeTokenServer(t, "")
		defer tokenServer.Close()

		userinfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusInternalServerError)
		}))
		defer userinfoServer.Close()

		p := testGoogleProvider(t)
		p.conf.Endpoint = oauth2.Endpoint{TokenURL: tokenServer.URL}
		p.endpoint = userinfoServer.URL

		_, err := p.ResolveProfile(context.Background(), "test-code")
		assert.Error(t, err)
	})
}
