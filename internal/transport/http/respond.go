package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"simwarga/pkg/domainerr"
	"simwarga/pkg/requestcontext"
)

// envelope is the uniform response body for every endpoint. Data is present
// on success, Error only on internal failures where the underlying message
// helps diagnostics.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// writeError translates a domain error into the envelope. Internal errors get
// a generic message with the cause attached; everything else surfaces the
// service's own message. Stack traces never leave the process.
func writeError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	status := domainerr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		writeJSON(w, status, envelope{
			Success: false,
			Message: "Internal server error",
			Error:   domainerr.Cause(err).Error(),
		})
		return
	}

	writeJSON(w, status, envelope{Success: false, Message: err.Error()})
}
