package appMiddleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/FACorreiaa/go-city-radius/internal/api"
)

// Authenticate rejects requests whose Authorization header does not carry
// "Bearer <token>" with the configured token.
func Authenticate(verifier *TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(authHeader, " ")
			if authHeader == "" || !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				slog.DebugContext(r.Context(), "Missing bearer token", slog.String("path", r.URL.Path))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized - Missing token")
				return
			}

			if !verifier.Verify(token) {
				slog.WarnContext(r.Context(), "Invalid bearer token", slog.String("path", r.URL.Path))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Unauthorized - Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
