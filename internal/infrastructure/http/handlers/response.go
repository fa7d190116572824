// Package handlers provides HTTP handlers for the REST API.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/larderai/pantry/pkg/errors"
)

// APIResponse is the standard envelope every handler writes.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

func writeOK(w http.ResponseWriter, logger *zap.Logger, data interface{}) {
	writeJSON(w, logger, http.StatusOK, APIResponse{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, logger *zap.Logger, data interface{}) {
	writeJSON(w, logger, http.StatusCreated, APIResponse{Success: true, Data: data})
}

// writeError resolves err to its taxonomy status code (spec.md §7);
// CodeDegraded never reaches here — degraded search paths return a response
// with a warning field and no error.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := apperrors.Wrap(err, "request failed")
	writeJSON(w, logger, appErr.StatusCode(), APIResponse{Success: false, Error: appErr.Message})
}
