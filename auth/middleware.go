package auth

import (
	"net/http"
	"strings"

	"github.com/user/recipeshare-go/apperror"
)

// RequireAuth is the single authentication guard for protected routes. It
// extracts the bearer token from the Authorization header, verifies it through
// the TokenService, and either rejects the request with 401 before the wrapped
// handler runs, or passes the resolved user ID down via the request context.
// Every failure mode (missing header, wrong scheme, malformed token, bad
// signature, expired, revoked) yields the same generic body.
func RequireAuth(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
				return
			}

			userID, err := tokens.VerifyToken(r.Context(), tokenString)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("Unauthorized", err))
				return
			}

			ctx := NewContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns false when the header is absent or uses another scheme.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
