package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/cryptox"
	"github.com/kinotek/kinotek/pkg/idx"
	"github.com/kinotek/kinotek/pkg/jwtx"
	"github.com/kinotek/kinotek/pkg/slogx"
)

// AuthService owns account registration and the credential-to-token exchange.
type AuthService struct {
	Store      store.Store
	Tokens     *TokenService
	HashRounds int
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password, s.HashRounds)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))

	// Return the persisted row, not the in-memory struct, so the caller
	// sees the store-assigned timestamps.
	return s.Store.Users().GetUserByID(ctx, user.ID)
}

// Login exchanges credentials for an access/refresh token pair. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		slogx.FromContext(ctx).Info("login rejected", slog.String("user_id", user.ID))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	return s.issuePair(jwtx.Subject{ID: user.ID, Role: user.Role})
}

// RotateAccess mints a fresh access token from a valid refresh token. The
// refresh token goes through the same block-list and cache path as any
// other bearer token.
func (s *AuthService) RotateAccess(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Tokens.AuthenticateToken(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenBlocked),
			errors.Is(err, jwtx.ErrExpired),
			errors.Is(err, jwtx.ErrMalformed),
			errors.Is(err, jwtx.ErrBadType),
			errors.Is(err, jwtx.ErrInvalidSig):
			return "", ErrInvalidRefresh
		}
		return "", err
	}
	if !claims.IsRefresh() {
		return "", ErrInvalidRefresh
	}

	return s.Tokens.Codec.Issue(jwtx.Subject{ID: claims.UserID(), Role: claims.Role}, false)
}

func (s *AuthService) issuePair(sub jwtx.Subject) (domain.TokenPair, error) {
	access, err := s.Tokens.Codec.Issue(sub, false)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Tokens.Codec.Issue(sub, true)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
