package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeError is the failure body of the /api routes:
// {"success": false, "error": "..."}.
type envelopeError struct {
	status  int
	Success bool   `json:"success"`
	Message string `json:"error"`
}

func (e *envelopeError) Error() string  { return e.Message }
func (e *envelopeError) GetStatus() int { return e.status }

var _ huma.StatusError = (*envelopeError)(nil)

func fail(status int, msg string) error {
	return &envelopeError{status: status, Message: msg}
}

// messageBody is the success body of mutating /api routes.
type messageBody struct {
	Success bool   `json:"success" doc:"Always true on success"`
	Message string `json:"message" doc:"Human-readable outcome"`
}

func succeeded(msg string) messageBody {
	return messageBody{Success: true, Message: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelopeError{status: status, Message: msg})
}
