package middleware

import "context"

type contextKey string

const sessionIDKey contextKey = "cart_session_id"

// SessionIDFromContext returns the cart session id attached by CartSession,
// or an empty string when the middleware did not run.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if value, ok := ctx.Value(sessionIDKey).(string); ok {
		return value
	}
	return ""
}

func withSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
