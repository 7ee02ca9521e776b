package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/service"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/httpx"
	"github.com/kinotek/kinotek/pkg/slogx"

	_ "github.com/kinotek/kinotek/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	TokenService    *service.TokenService
	AuthService     *service.AuthService
	MovieService    *service.MovieService
	DirectorService *service.DirectorService
	GenreService    *service.GenreService
}

func NewRouter(st store.Store, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMovies()
	r.registerDirectors()
	r.registerGenres()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Kinotek Movie Catalog API
//	@version		0.1.0
//	@description	Movie catalog backend with JWT-based authentication, cursor pagination and per-user like tracking.
//	@description
//	@description				Access and refresh tokens are HS256-signed JWTs carrying distinct type claims.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, TokenService: r.TokenService}

	// Credential endpoints - strict rate limit by IP (brute force prevention)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Rotation takes the refresh token itself, so the guard demands the
	// refresh type rather than the usual access type.
	r.Mux.Handle("POST /v1/auth/token/access",
		httpx.Chain(http.HandlerFunc(h.HandleRotateAccess),
			httpx.Authn(r.TokenService),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/token/block",
		httpx.Chain(http.HandlerFunc(h.HandleBlock),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Smoke-test endpoint for authenticated access tokens.
	r.Mux.Handle("GET /v1/auth/private",
		httpx.Chain(http.HandlerFunc(h.HandlePrivate),
			httpx.Authn(r.TokenService),
			httpx.Guard(httpx.Policy{}),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerMovies() {
	h := &MovieHandler{MovieService: r.MovieService}

	// Reads are public but still authenticate when a token is present, so
	// listings can carry the viewer's own like status.
	read := []httpx.Middleware{
		httpx.Authn(r.TokenService),
		httpx.Guard(httpx.Policy{Public: true}),
		httpx.RateLimitByIP(httpx.LenientLimit),
	}
	r.Mux.Handle("GET /v1/movies", httpx.Chain(http.HandlerFunc(h.HandleList), read...))
	r.Mux.Handle("GET /v1/movies/{id}", httpx.Chain(http.HandlerFunc(h.HandleGet), read...))

	// Catalog mutations are admin-only.
	admin := []httpx.Middleware{
		httpx.Authn(r.TokenService),
		httpx.Guard(httpx.Policy{Role: domain.RoleAdmin}),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("POST /v1/movies", httpx.Chain(http.HandlerFunc(h.HandleCreate), admin...))
	r.Mux.Handle("PATCH /v1/movies/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), admin...))
	r.Mux.Handle("DELETE /v1/movies/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), admin...))

	// Reactions need any authenticated user.
	react := []httpx.Middleware{
		httpx.Authn(r.TokenService),
		httpx.Guard(httpx.Policy{}),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("POST /v1/movies/{id}/like", httpx.Chain(http.HandlerFunc(h.HandleLike), react...))
	r.Mux.Handle("POST /v1/movies/{id}/dislike", httpx.Chain(http.HandlerFunc(h.HandleDislike), react...))
}

func (r *Router) registerDirectors() {
	h := &DirectorHandler{DirectorService: r.DirectorService}

	r.Mux.Handle("GET /v1/directors",
		httpx.Chain(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /v1/directors/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), httpx.RateLimitByIP(httpx.LenientLimit)))

	admin := []httpx.Middleware{
		httpx.Authn(r.TokenService),
		httpx.Guard(httpx.Policy{Role: domain.RoleAdmin}),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("POST /v1/directors", httpx.Chain(http.HandlerFunc(h.HandleCreate), admin...))
	r.Mux.Handle("PUT /v1/directors/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), admin...))
	r.Mux.Handle("DELETE /v1/directors/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), admin...))
}

func (r *Router) registerGenres() {
	h := &GenreHandler{GenreService: r.GenreService}

	r.Mux.Handle("GET /v1/genres",
		httpx.Chain(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /v1/genres/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), httpx.RateLimitByIP(httpx.LenientLimit)))

	admin := []httpx.Middleware{
		httpx.Authn(r.TokenService),
		httpx.Guard(httpx.Policy{Role: domain.RoleAdmin}),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("POST /v1/genres", httpx.Chain(http.HandlerFunc(h.HandleCreate), admin...))
	r.Mux.Handle("PUT /v1/genres/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), admin...))
	r.Mux.Handle("DELETE /v1/genres/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), admin...))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store))
}
