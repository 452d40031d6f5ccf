// Package shared holds helpers used by several HTTP handler packages.
package shared

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mostudy/aiproxy/internal/runtime"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteResponse writes a function response to an HTTP response writer.
func WriteResponse(w http.ResponseWriter, res runtime.Response) {
	WriteJSON(w, res.Body, res.StatusCode)
}
