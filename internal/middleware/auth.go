package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cocial-api/internal/domain"
	"cocial-api/internal/token"
	"cocial-api/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// IdentityContextKey is the key for the authenticated identity in context
	IdentityContextKey ContextKey = "identity"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// unauthenticatedBody is the response for every rejected request. Missing
// and invalid tokens are deliberately indistinguishable to the client.
const unauthenticatedBody = `{"error":"Unauthenticated"}`

// Auth gates every request behind bearer-token resolution. It runs before
// any endpoint logic; requests that do not resolve to an identity never
// reach a handler.
func Auth(tokens token.Store, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tok := strings.TrimPrefix(authHeader, "Bearer ")
			if authHeader == "" || tok == authHeader {
				WriteUnauthenticated(w)
				return
			}

			ctx := r.Context()
			identity, err := tokens.Resolve(ctx, tok)
			if err != nil {
				if err != token.ErrInvalidToken {
					log.WithError(err).Error("Token resolution failed")
				}
				WriteUnauthenticated(w)
				return
			}

			ctx = context.WithValue(ctx, IdentityContextKey, identity)
			r = r.WithContext(ctx)

			log.WithField("user_id", identity.UserID).Debug("Request authenticated")

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext returns the authenticated identity set by Auth
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(*domain.Identity)
	return identity, ok
}

// WriteUnauthenticated writes the generic authentication rejection
func WriteUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(unauthenticatedBody))
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// generateRequestID generates a simple request ID
func generateRequestID() string {
	return fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond())
}
