package httpx

import (
	"net/http"

	"github.com/kinotek/kinotek/pkg/jwtx"
)

// Policy is the explicit per-route authorization configuration the guard
// consults. Routes declare their policy where they are registered; there is
// no reflection-driven metadata lookup.
type Policy struct {
	// Public routes bypass the guard entirely, identity or not.
	Public bool

	// TokenType is the claims type the route demands. Empty means "access":
	// refresh tokens never authorize resource access, only token rotation.
	TokenType string

	// Role, when set, must match the identity's role exactly.
	Role string
}

// Guard enforces a route's Policy after Authn has run. The broad
// allow/deny decision (public bypass, identity presence, token type) comes
// before the finer role check.
func Guard(p Policy) Middleware {
	want := p.TokenType
	if want == "" {
		want = jwtx.TypeAccess
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p.Public {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := IdentityFromContext(r.Context())
			if !ok || claims.TokenType != want {
				WriteBearerError(w, "authentication required")
				return
			}

			if p.Role != "" && claims.Role != p.Role {
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="role:`+p.Role+`"`)
				APIError{
					Status:  http.StatusForbidden,
					Code:    "forbidden",
					Message: "role " + p.Role + " required",
				}.WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
