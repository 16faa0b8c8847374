package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
)

// APIResponse is the envelope of every JSON response.
//
// Form endpoints also fill Notification (the toast the page shows), Outcome
// (what the page does next) and Redirect (where to go, for outcome
// "redirect").
type APIResponse struct {
	Success      bool          `json:"success"`
	Data         any           `json:"data,omitempty"`
	Error        string        `json:"error,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
	Outcome      string        `json:"outcome,omitempty"`
	Redirect     string        `json:"redirect,omitempty"`
}

// Notification is a user-facing toast.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Variant     string `json:"variant,omitempty"` // "" or "destructive"
}

// VariantDestructive marks an error notification.
const VariantDestructive = "destructive"

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, APIResponse{Success: true, Data: data})
}

// Error writes an error envelope, deriving the status from the domain error.
func Error(w http.ResponseWriter, err error) {
	writeEnvelope(w, mapErrorToStatus(err), APIResponse{Success: false, Error: err.Error()})
}

// ErrorWithMessage writes an error envelope with an explicit status.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, APIResponse{Success: false, Error: message})
}

// Envelope writes resp as is. Used by form endpoints that fill the
// notification fields.
func Envelope(w http.ResponseWriter, status int, resp APIResponse) {
	writeEnvelope(w, status, resp)
}

func writeEnvelope(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// StatusOf maps a domain error to its HTTP status code.
func StatusOf(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
