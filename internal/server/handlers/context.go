package handlers

import "context"

// contextKey is the type for request context keys set by the auth
// middleware.
type contextKey string

// UserIDKey holds the verified user id of the request.
const UserIDKey contextKey = "user_id"

// GetUserID extracts the verified user id from the request context.
// It is only present on requests that passed the auth middleware.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
