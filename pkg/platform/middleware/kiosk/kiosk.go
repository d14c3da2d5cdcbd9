// Package kiosk restricts print endpoints to kiosks holding the shared token.
package kiosk

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	request "labelprint/pkg/platform/middleware/request"
)

// HeaderToken carries the kiosk token.
const HeaderToken = "X-Kiosk-Token"

// RequireToken rejects requests whose X-Kiosk-Token does not match expected.
// An empty expected token disables the check.
func RequireToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderToken)
			if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "kiosk token mismatch",
					"request_id", request.GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"kiosk token required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
