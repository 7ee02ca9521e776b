package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/service"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/internal/catalog/store/drivers/sqlite"
	"github.com/kinotek/kinotek/pkg/cryptox"
	"github.com/kinotek/kinotek/pkg/idx"
	"github.com/kinotek/kinotek/pkg/jwtx"
	"github.com/kinotek/kinotek/pkg/kvx"
	"github.com/kinotek/kinotek/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	cache := kvx.NewMemoryStore()
	t.Cleanup(func() { _ = cache.Close() })

	issuer := &jwtx.Issuer{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     5 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}
	tokens := &service.TokenService{Codec: issuer, Cache: cache}

	r := NewRouter(st, "test", slogx.New(slogx.Config{Level: "error", Format: "text"}))
	r.TokenService = tokens
	r.AuthService = &service.AuthService{Store: st, Tokens: tokens, HashRounds: 4}
	r.MovieService = &service.MovieService{Store: st}
	r.DirectorService = &service.DirectorService{Store: st}
	r.GenreService = &service.GenreService{Store: st}
	r.ApplyRoutes()

	return r, st
}

func do(t *testing.T, r *Router, method, path string, headers map[string]string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func basicAuth(email, password string) map[string]string {
	return map[string]string{
		"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password)),
	}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func seedAdmin(t *testing.T, st store.Store) {
	t.Helper()
	hash, err := cryptox.HashPassword("admin-pass", 4)
	require.NoError(t, err)
	require.NoError(t, st.Users().CreateUser(t.Context(), domain.User{
		ID:           idx.New().String(),
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}))
}

func TestAuthTokenLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := do(t, r, "POST", "/v1/auth/register", basicAuth("eve@example.com", "s3cret-pass"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeBody[domain.User](t, rec)
	require.NotEmpty(t, user.ID)
	require.NotContains(t, rec.Body.String(), "password", "hash must never serialize")

	t.Run("register without credentials", func(t *testing.T) {
		rec := do(t, r, "POST", "/v1/auth/register", nil, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	rec = do(t, r, "POST", "/v1/auth/login", basicAuth("eve@example.com", "s3cret-pass"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	pair := decodeBody[tokenPairResponse](t, rec)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	t.Run("access token reaches private route", func(t *testing.T) {
		rec := do(t, r, "GET", "/v1/auth/private", bearer(pair.AccessToken), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]string](t, rec)
		require.Equal(t, user.ID, body["user_id"])
		require.Equal(t, domain.RoleUser, body["role"])
	})

	t.Run("refresh token is refused by the guard", func(t *testing.T) {
		rec := do(t, r, "GET", "/v1/auth/private", bearer(pair.RefreshToken), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("no token is refused", func(t *testing.T) {
		rec := do(t, r, "GET", "/v1/auth/private", nil, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token falls through to the guard", func(t *testing.T) {
		rec := do(t, r, "GET", "/v1/auth/private", bearer("garbage"), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	var rotated string
	t.Run("refresh token rotates access", func(t *testing.T) {
		rec := do(t, r, "POST", "/v1/auth/token/access", bearer(pair.RefreshToken), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rotated = decodeBody[accessTokenResponse](t, rec).AccessToken
		require.NotEmpty(t, rotated)

		rec = do(t, r, "GET", "/v1/auth/private", bearer(rotated), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("access token cannot rotate", func(t *testing.T) {
		rec := do(t, r, "POST", "/v1/auth/token/access", bearer(pair.AccessToken), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("blocked token stops working", func(t *testing.T) {
		rec := do(t, r, "POST", "/v1/auth/token/block", bearer(pair.AccessToken), nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, r, "GET", "/v1/auth/private", bearer(pair.AccessToken), nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		// The rotated token is untouched.
		rec = do(t, r, "GET", "/v1/auth/private", bearer(rotated), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	r, st := newTestRouter(t)
	seedAdmin(t, st)

	rec := do(t, r, "POST", "/v1/auth/login", basicAuth("admin@example.com", "admin-pass"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	admin := decodeBody[tokenPairResponse](t, rec)

	rec = do(t, r, "POST", "/v1/auth/register", basicAuth("fan@example.com", "s3cret-pass"), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, r, "POST", "/v1/auth/login", basicAuth("fan@example.com", "s3cret-pass"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fan := decodeBody[tokenPairResponse](t, rec)

	t.Run("catalog mutations need the admin role", func(t *testing.T) {
		rec := do(t, r, "POST", "/v1/directors", bearer(fan.AccessToken),
			map[string]any{"name": "Nope", "dob": "1990-01-01"})
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	rec = do(t, r, "POST", "/v1/directors", bearer(admin.AccessToken),
		map[string]any{"name": "Agnès Varda", "dob": "1928-05-30", "nationality": "FR"})
	require.Equal(t, http.StatusCreated, rec.Code)
	director := decodeBody[domain.Director](t, rec)

	rec = do(t, r, "POST", "/v1/genres", bearer(admin.AccessToken), map[string]any{"name": "Documentary"})
	require.Equal(t, http.StatusCreated, rec.Code)
	genre := decodeBody[domain.Genre](t, rec)

	t.Run("duplicate genre name conflicts", func(t *testing.T) {
		rec := do(t, r, "POST", "/v1/genres", bearer(admin.AccessToken), map[string]any{"name": "Documentary"})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	var movieID int64
	for i := 1; i <= 7; i++ {
		rec := do(t, r, "POST", "/v1/movies", bearer(admin.AccessToken), map[string]any{
			"title":       fmt.Sprintf("Film %02d", i),
			"description": "a film",
			"director_id": director.ID,
			"genre_ids":   []int64{genre.ID},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		movieID = decodeBody[domain.Movie](t, rec).ID
	}

	t.Run("cursor pagination over the wire", func(t *testing.T) {
		rec := do(t, r, "GET", "/v1/movies?take=3&order=title_DESC", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		first := decodeBody[moviePageResponse](t, rec)
		require.Len(t, first.Data, 3)
		require.EqualValues(t, 7, first.Count)
		require.Equal(t, "Film 07", first.Data[0].Title)
		require.NotEmpty(t, first.NextCursor)
		require.NotNil(t, first.Data[0].Director)
		require.Equal(t, "Agnès Varda", first.Data[0].Director.Name)

		rec = do(t, r, "GET", "/v1/movies?take=3&cursor="+url.QueryEscape(first.NextCursor), nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		second := decodeBody[moviePageResponse](t, rec)
		require.Len(t, second.Data, 3)
		require.Equal(t, "Film 04", second.Data[0].Title)
	})

	t.Run("malformed cursor is a 400", func(t *testing.T) {
		rec := do(t, r, "GET", "/v1/movies?cursor=%21%21not-base64", nil, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reactions require authentication", func(t *testing.T) {
		rec := do(t, r, "POST", fmt.Sprintf("/v1/movies/%d/like", movieID), nil, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("like shows up in the listing for the viewer", func(t *testing.T) {
		rec := do(t, r, "POST", fmt.Sprintf("/v1/movies/%d/like", movieID), bearer(fan.AccessToken), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		liked := decodeBody[domain.Movie](t, rec)
		require.EqualValues(t, 1, liked.LikeCount)
		require.NotNil(t, liked.LikeStatus)
		require.True(t, *liked.LikeStatus)

		// Anonymous fetch sees the count but no personal status.
		rec = do(t, r, "GET", fmt.Sprintf("/v1/movies/%d", movieID), nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		anon := decodeBody[domain.Movie](t, rec)
		require.EqualValues(t, 1, anon.LikeCount)
		require.Nil(t, anon.LikeStatus)

		// The viewer's own fetch carries the status.
		rec = do(t, r, "GET", fmt.Sprintf("/v1/movies/%d", movieID), bearer(fan.AccessToken), nil)
		viewer := decodeBody[domain.Movie](t, rec)
		require.NotNil(t, viewer.LikeStatus)
	})

	t.Run("movie delete cascades", func(t *testing.T) {
		rec := do(t, r, "DELETE", fmt.Sprintf("/v1/movies/%d", movieID), bearer(admin.AccessToken), nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, r, "GET", fmt.Sprintf("/v1/movies/%d", movieID), nil, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("health endpoints", func(t *testing.T) {
		rec := do(t, r, "GET", "/livez", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec = do(t, r, "GET", "/readyz", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
