package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "cocial-api/pkg/errors"
	"cocial-api/pkg/logger"
)

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to the typed JSON error envelope. Untyped errors
// are reported as internal.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("Internal server error", err)
	}

	log.WithError(appErr).Error("Request error")

	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"type":    string(appErr.Type),
			"message": appErr.Message,
		},
	}
	if appErr.Details != nil {
		response["error"].(map[string]interface{})["details"] = appErr.Details
	}

	writeJSON(w, appErr.StatusCode, response)
}
