// ABOUTME: JSON error bodies for the fixture download server.
// ABOUTME: Every failed request answers with a code, message and status, plus optional field or details.

package errors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned by the fixture server
const (
	// Client errors (4xx)
	ErrInvalidRequest  = "invalid_request"
	ErrUnauthorized    = "unauthorized"
	ErrUnknownScenario = "unknown_scenario"
	ErrRunNotFound     = "run_not_found"

	// Server errors (5xx)
	ErrInternal         = "internal_error"
	ErrDatabaseError    = "database_error"
	ErrGenerationFailed = "generation_failed"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	// Field names the query parameter that failed validation.
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// WriteError replies with status and a body carrying code and message.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	write(w, ErrorResponse{Code: code, Message: message, Status: status})
}

// WriteErrorWithField is WriteError for a rejected parameter, e.g. "seed".
func WriteErrorWithField(w http.ResponseWriter, status int, code, message, field string) {
	write(w, ErrorResponse{Code: code, Message: message, Status: status, Field: field})
}

// WriteErrorWithDetails is WriteError with the underlying cause attached.
func WriteErrorWithDetails(w http.ResponseWriter, status int, code, message, details string) {
	write(w, ErrorResponse{Code: code, Message: message, Status: status, Details: details})
}

func write(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
