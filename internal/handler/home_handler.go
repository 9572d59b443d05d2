package handler

import (
	"net/http"

	"cocial-api/internal/middleware"
)

// HomeHandler returns the display name of the authenticated identity
type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Get handles GET /v1/home
func (h *HomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.WriteUnauthenticated(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"name": identity.Name})
}
