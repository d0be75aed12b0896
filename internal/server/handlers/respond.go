package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avolkov/taskly/pkg/api"
)

// writeJSON sends a JSON response with the given status code
func writeJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// writeMessage sends a {success, message} acknowledgment
func writeMessage(logger *slog.Logger, w http.ResponseWriter, success bool, message string, statusCode int) {
	writeJSON(logger, w, api.MessageResponse{Success: success, Message: message}, statusCode)
}
