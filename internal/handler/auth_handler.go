package handler

import (
	"net/http"
	"strings"

	"cocial-api/internal/container"
	"cocial-api/internal/middleware"
)

// AuthHandler exposes the authentication gateway over HTTP: login
// initiation, the provider callback and logout.
type AuthHandler struct {
	container *container.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *container.Container) *AuthHandler {
	return &AuthHandler{container: container}
}

// Login handles GET /login: it stores per-attempt correlation state and
// redirects the browser to the provider's authorization page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	url, err := h.container.GetAuthService().BeginLogin(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to begin login")
		middleware.WriteUnauthenticated(w)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// Callback handles GET /oauth2/callback. Any handshake failure, including a
// consent denial relayed in the error query param, produces the generic
// rejection; provider internals are never exposed to the client.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		log.WithField("provider_error", errParam).Warn("Provider callback returned error")
		middleware.WriteUnauthenticated(w)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	token, err := h.container.GetAuthService().CompleteLogin(r.Context(), state, code)
	if err != nil {
		log.WithError(err).Warn("Login failed")
		middleware.WriteUnauthenticated(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

// Logout handles POST /logout. The presented token is processed and revoked
// best effort; the response is a plain 200 with no redirect, since the
// caller is a programmatic client.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		token = ""
	}

	h.container.GetAuthService().Logout(r.Context(), token)

	w.WriteHeader(http.StatusOK)
}
