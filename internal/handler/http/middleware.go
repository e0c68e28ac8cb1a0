package http

import (
	"net/http"
	"strings"

	"github.com/grimimirg/auth-middleware/internal/response"
)

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				writeAPIResponse(w, response.InvalidInputValue)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
