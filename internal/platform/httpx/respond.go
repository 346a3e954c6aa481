// Package httpx provides JSON request and response utilities.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrEmptyBody indicates a request without a body where one is required.
var ErrEmptyBody = errors.New("request body is required")

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends a single-message error body: {"error": "..."}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// FieldErrors sends a per-field error body: {"errors": {field: message}}.
func FieldErrors(w http.ResponseWriter, status int, fields map[string]string) {
	JSON(w, status, map[string]map[string]string{"errors": fields})
}

// DecodeJSON decodes the request body into target. An empty body is
// reported as ErrEmptyBody so callers can answer with a clear message.
func DecodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}
