package auth

import (
	"context"
)

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// WithIdentity returns a context carrying the resolved principal. The
// returned context is request-scoped; identities never outlive the request
// they were resolved for and never leak between concurrent requests.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFromContext finds the principal installed for this request.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(Identity)
	return identity, ok
}

// UsernameFromContext is a convenience for audit stamping: it returns the
// authenticated username or the empty string when no identity is installed.
func UsernameFromContext(ctx context.Context) string {
	if identity, ok := IdentityFromContext(ctx); ok {
		return identity.Username()
	}
	return ""
}
