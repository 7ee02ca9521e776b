package http

import (
	"errors"
	"net/http"

	"github.com/kinotek/kinotek/internal/catalog/service"
	"github.com/kinotek/kinotek/pkg/httpx"
)

// AuthHandler serves the /v1/auth endpoints. Register and login take
// credentials in a Basic Authorization header; the token endpoints take the
// token itself as a Bearer header.
type AuthHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// HandleRegister godoc
//
//	@Summary		Register a new account
//	@Description	Creates an account from the email and password carried in a Basic Authorization header.
//	@Tags			Auth
//	@Produce		json
//	@Param			Authorization	header		string			true	"Basic base64(email:password)"
//	@Success		201				{object}	domain.User		"the created account"
//	@Failure		400				{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	cred, err := httpx.ParseBasicCredential(r.Header.Get("Authorization"))
	if err != nil {
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
			Message: "expected a Basic Authorization header"}.WriteError(w)
		return
	}

	user, err := h.AuthService.Register(r.Context(), cred.Email, cred.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.APIError{Status: http.StatusBadRequest, Code: "email_taken",
				Message: "email is already registered"}.WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, user)
}

// HandleLogin godoc
//
//	@Summary		Exchange credentials for tokens
//	@Description	Verifies the Basic credentials and returns an access/refresh token pair.
//	@Tags			Auth
//	@Produce		json
//	@Param			Authorization	header		string				true	"Basic base64(email:password)"
//	@Success		200				{object}	tokenPairResponse	"access_token, refresh_token"
//	@Failure		400				{object}	httpx.APIError		"error, error_description"
//	@Header			200				{string}	Cache-Control		"no-store"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	cred, err := httpx.ParseBasicCredential(r.Header.Get("Authorization"))
	if err != nil {
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
			Message: "expected a Basic Authorization header"}.WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), cred.Email, cred.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_credentials",
				Message: "email or password is incorrect"}.WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleRotateAccess godoc
//
//	@Summary		Rotate the access token
//	@Description	Mints a fresh access token from the refresh token carried as a Bearer header.
//	@Tags			Auth
//	@Produce		json
//	@Param			Authorization	header		string				true	"Bearer {refresh_token}"
//	@Success		200				{object}	accessTokenResponse	"access_token"
//	@Failure		400				{object}	httpx.APIError		"error, error_description"
//	@Failure		401				{object}	httpx.APIError		"error, error_description"
//	@Header			200				{string}	Cache-Control		"no-store"
//	@Router			/v1/auth/token/access [post].
func (h *AuthHandler) HandleRotateAccess(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
			Message: "expected a Bearer Authorization header"}.WriteError(w)
		return
	}

	access, err := h.AuthService.RotateAccess(r.Context(), raw)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			httpx.WriteBearerError(w, "refresh token is not valid")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accessTokenResponse{AccessToken: access})
}

// HandleBlock godoc
//
//	@Summary		Revoke a token
//	@Description	Puts the Bearer token on the block list for the remainder of its lifetime.
//	@Tags			Auth
//	@Success		204	"no content"
//	@Param			Authorization	header		string			true	"Bearer {token}"
//	@Failure		400				{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/auth/token/block [post].
func (h *AuthHandler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
			Message: "expected a Bearer Authorization header"}.WriteError(w)
		return
	}

	if err := h.TokenService.Block(r.Context(), raw); err != nil {
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
			Message: "token is not decodable"}.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandlePrivate godoc
//
//	@Summary		Inspect the authenticated identity
//	@Description	Returns the user id and role from the verified access token.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]string	"user_id, role"
//	@Failure		401	{object}	httpx.APIError		"error, error_description"
//	@Router			/v1/auth/private [get].
func (h *AuthHandler) HandlePrivate(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteBearerError(w, "authentication required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"user_id": claims.UserID(),
		"role":    claims.Role,
	})
}
