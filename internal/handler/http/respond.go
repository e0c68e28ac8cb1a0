package http

import (
	"encoding/json"
	"net/http"

	"github.com/grimimirg/auth-middleware/internal/response"
)

// writeJSON serializes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAPIResponse writes a response-table entry with its own HTTP status.
func writeAPIResponse(w http.ResponseWriter, entry response.APIResponse) {
	writeJSON(w, entry.StatusCode(), entry)
}
