package httpx

import (
	"context"

	"github.com/kinotek/kinotek/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyIdentity ctxKey = "identity"
)

// ContextWithIdentity attaches verified token claims to the request context.
func ContextWithIdentity(ctx context.Context, claims jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, claims.UserID())
	return context.WithValue(ctx, CtxKeyIdentity, claims)
}

// IdentityFromContext returns the claims the authn middleware attached, if
// the request carried a usable token.
func IdentityFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyIdentity).(jwtx.Claims)
	return c, ok
}

// UserIDFromContext returns the authenticated user id or "".
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return id
	}
	return ""
}
