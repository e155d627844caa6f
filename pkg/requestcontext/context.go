// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them; services and the audit
// publisher read them without importing anything from net/http.
package requestcontext

import "context"

type (
	userIDKey    struct{}
	usernameKey  struct{}
	roleKey      struct{}
	requestIDKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyUserID    = userIDKey{}
	ContextKeyUsername  = usernameKey{}
	ContextKeyRole      = roleKey{}
	ContextKeyRequestID = requestIDKey{}
)

// UserID retrieves the authenticated user ID from the context.
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyUserID).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects an authenticated user ID into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// Username retrieves the authenticated username from the context.
func Username(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyUsername).(string); ok {
		return v
	}
	return ""
}

// WithUsername injects the authenticated username into the context.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, ContextKeyUsername, username)
}

// Role retrieves the authenticated user's role from the context.
func Role(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRole).(string); ok {
		return v
	}
	return ""
}

// WithRole injects the authenticated user's role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ContextKeyRole, role)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}
