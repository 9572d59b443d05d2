package handler

import (
	"net/http"

	"cocial-api/internal/container"
)

// HealthHandler reports liveness of the service and its stores
type HealthHandler struct {
	container *container.Container
}

func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{container: container}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := http.StatusOK
	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}

	if err := h.container.GetDB().Health(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if err := h.container.GetRedisClient().Health(ctx); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}
