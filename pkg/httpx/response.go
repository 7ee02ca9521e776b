package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets Cache-Control headers for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// APIError is the JSON error envelope every handler speaks.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"error_description"`
}

func (e APIError) Error() string { return e.Code + ": " + e.Message }

// WriteError serializes the error with its status code.
func (e APIError) WriteError(w http.ResponseWriter) {
	NoCache(w)
	WriteJSON(w, e.Status, e)
}

// WriteBearerError writes an RFC 6750-style unauthorized response.
func WriteBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	APIError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: desc}.WriteError(w)
}
