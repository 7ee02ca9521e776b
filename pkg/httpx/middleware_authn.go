package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/kinotek/kinotek/pkg/jwtx"
	"github.com/kinotek/kinotek/pkg/slogx"
)

// TokenAuthenticator resolves a raw bearer token into verified claims. The
// implementation is expected to consult its block-list and verified-token
// cache before falling back to full signature verification.
type TokenAuthenticator interface {
	AuthenticateToken(ctx context.Context, raw string) (jwtx.Claims, error)
}

// Authn resolves the Authorization header into a request identity.
//
// A missing header, an unparseable header, or a token that fails
// verification all let the request continue anonymously: the guard decides
// whether a missing identity is fatal for the route, which keeps public
// routes reachable with a garbled header. The one surfaced failure is an
// expired token (401), so clients can tell expiry apart from rejection.
func Authn(auth TokenAuthenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := ParseBearerToken(header)
			if err != nil {
				// Not a bearer credential (register/login send Basic).
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.AuthenticateToken(ctx, raw)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, claims)))
			case errors.Is(err, jwtx.ErrExpired):
				WriteBearerError(w, "token expired")
			default:
				log.Debug("bearer token rejected", "err", err)
				next.ServeHTTP(w, r)
			}
		})
	}
}
