package auth

import "context"

// contextKey is a private type for context keys, preventing collisions with
// keys set by other packages.
type contextKey string

const userIDContextKey contextKey = "auth_user_id"

// NewContextWithUserID returns a child context carrying the authenticated
// user's ID. Only the RequireAuth middleware writes this value, so a handler
// behind the middleware can rely on it being present and current.
func NewContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts the authenticated user ID set by RequireAuth.
// The second return value is false when the request never passed the guard.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}
