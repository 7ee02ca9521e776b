package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kinotek/kinotek/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// fakeAuthenticator lets tests script the token resolution outcome.
type fakeAuthenticator struct {
	claims jwtx.Claims
	err    error
	calls  int
}

func (f *fakeAuthenticator) AuthenticateToken(_ context.Context, _ string) (jwtx.Claims, error) {
	f.calls++
	return f.claims, f.err
}

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := IdentityFromContext(r.Context()); ok {
			WriteJSON(w, http.StatusOK, map[string]string{"sub": claims.UserID()})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"sub": ""})
	})
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	accessClaims := jwtx.Claims{TokenType: jwtx.TypeAccess, Role: "user"}
	accessClaims.Subject = "u1"

	t.Run("no header passes through anonymously", func(t *testing.T) {
		auth := &fakeAuthenticator{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		Chain(echoIdentity(), Authn(auth)).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Zero(t, auth.calls)
		require.Contains(t, rec.Body.String(), `"sub":""`)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		auth := &fakeAuthenticator{claims: accessClaims}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")

		Chain(echoIdentity(), Authn(auth)).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"sub":"u1"`)
	})

	t.Run("expired token surfaces 401", func(t *testing.T) {
		auth := &fakeAuthenticator{err: jwtx.ErrExpired}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")

		Chain(echoIdentity(), Authn(auth)).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token stays anonymous", func(t *testing.T) {
		auth := &fakeAuthenticator{err: jwtx.ErrInvalidSig}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")

		Chain(echoIdentity(), Authn(auth)).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"sub":""`)
	})

	t.Run("basic header stays anonymous", func(t *testing.T) {
		auth := &fakeAuthenticator{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwdw==")

		Chain(echoIdentity(), Authn(auth)).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Zero(t, auth.calls)
	})
}

func TestGuard(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	withIdentity := func(req *http.Request, tokenType, role string) *http.Request {
		claims := jwtx.Claims{TokenType: tokenType, Role: role}
		claims.Subject = "u1"
		return req.WithContext(ContextWithIdentity(req.Context(), claims))
	}

	t.Run("public route allows anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Chain(ok, Guard(Policy{Public: true})).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("protected route denies anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Chain(ok, Guard(Policy{})).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token passes default policy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), jwtx.TypeAccess, "user")
		Chain(ok, Guard(Policy{})).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("refresh token denied on resource routes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), jwtx.TypeRefresh, "user")
		Chain(ok, Guard(Policy{})).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rotation route wants refresh tokens", func(t *testing.T) {
		policy := Policy{TokenType: jwtx.TypeRefresh}

		rec := httptest.NewRecorder()
		req := withIdentity(httptest.NewRequest(http.MethodPost, "/", nil), jwtx.TypeRefresh, "user")
		Chain(ok, Guard(policy)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = httptest.NewRecorder()
		req = withIdentity(httptest.NewRequest(http.MethodPost, "/", nil), jwtx.TypeAccess, "user")
		Chain(ok, Guard(policy)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("role mismatch is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withIdentity(httptest.NewRequest(http.MethodPost, "/", nil), jwtx.TypeAccess, "user")
		Chain(ok, Guard(Policy{Role: "admin"})).ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = httptest.NewRecorder()
		req = withIdentity(httptest.NewRequest(http.MethodPost, "/", nil), jwtx.TypeAccess, "admin")
		Chain(ok, Guard(Policy{Role: "admin"})).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	limited := Chain(ok, RateLimitByIP(RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		Burst:             2,
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	for range 2 {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// A different client is unaffected.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, other)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
