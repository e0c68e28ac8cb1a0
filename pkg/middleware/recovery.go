package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/grimimirg/auth-middleware/pkg/logger"
)

// panicBody is the envelope written when a handler panics. It carries the
// same code/http_code/message shape as the gateway's API response table so
// clients always parse one format.
type panicBody struct {
	Code     int    `json:"code"`
	HTTPCode string `json:"http_code"`
	Message  string `json:"message"`
}

// Recovery converts handler panics into a 500 response instead of killing
// the process.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					ctx := r.Context()
					l.ErrorContext(ctx, "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("correlation_id", logger.CorrelationIDFromContext(ctx)),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					if err := json.NewEncoder(w).Encode(panicBody{
						Code:     2,
						HTTPCode: "500",
						Message:  "Internal server error",
					}); err != nil {
						l.Error("failed to encode response", slog.String("error", err.Error()))
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
