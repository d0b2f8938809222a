// Package requestctx carries per-request identity resolved by the auth
// middleware to downstream handlers.
package requestctx

import "context"

// userIDContextKey is the context key for the authenticated user identity.
type userIDContextKey struct{}

// WithUserID stores an authenticated user identifier in context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext returns the user identifier stored in context, or the
// empty string when the request is unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(userIDContextKey{}).(string)
	return value
}
