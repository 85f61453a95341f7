package domain

import "context"

type bearerKey struct{}

// ContextWithBearer attaches the caller's ID token to ctx. An empty token
// leaves ctx unchanged.
func ContextWithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, bearerKey{}, token)
}

func BearerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(bearerKey{}).(string); ok {
		return v
	}
	return ""
}
