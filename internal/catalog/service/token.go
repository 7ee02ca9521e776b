package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/kinotek/kinotek/pkg/jwtx"
	"github.com/kinotek/kinotek/pkg/kvx"
	"github.com/kinotek/kinotek/pkg/slogx"
)

const (
	tokenCachePrefix = "Token_"
	blockCachePrefix = "BLOCK_TOKEN_"

	// cacheExpiryMargin keeps cached verdicts from outliving the token:
	// entries die 30s before the token itself does.
	cacheExpiryMargin = 30 * time.Second

	// minCacheTTL covers tokens already inside the margin.
	minCacheTTL = time.Millisecond
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_already_registered")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrTokenBlocked       = errors.New("token_blocked")
)

// TokenCodec is the subset of jwtx.Issuer the services need. It is an
// interface so tests can observe how often signature checks actually run.
type TokenCodec interface {
	Issue(sub jwtx.Subject, refresh bool) (string, error)
	Decode(raw string) (jwtx.Claims, error)
	Verify(raw string) (jwtx.Claims, error)
}

// TokenService authenticates bearer tokens with a verification cache and a
// TTL-bounded revocation list in front of signature checks.
type TokenService struct {
	Codec TokenCodec
	Cache kvx.Store
}

// AuthenticateToken checks the block list, then the verification cache, and
// only falls back to a full signature check on a cache miss. Successful
// verdicts are cached until shortly before the token expires.
func (s *TokenService) AuthenticateToken(ctx context.Context, raw string) (jwtx.Claims, error) {
	l := slogx.FromContext(ctx)

	_, err := s.Cache.Get(ctx, blockCachePrefix+raw)
	if err == nil {
		return jwtx.Claims{}, ErrTokenBlocked
	}
	if !errors.Is(err, kvx.ErrNotFound) {
		// A broken cache must not lock everyone out; fall through to verify.
		l.Warn("token block list lookup failed", slog.Any("error", err))
	}

	if payload, err := s.Cache.Get(ctx, tokenCachePrefix+raw); err == nil {
		var claims jwtx.Claims
		if err := json.Unmarshal(payload, &claims); err == nil {
			return claims, nil
		}
		l.Warn("discarding undecodable cached token claims")
	}

	claims, err := s.Codec.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, err
	}

	ttl := claims.Remaining(time.Now()) - cacheExpiryMargin
	if ttl < minCacheTTL {
		ttl = minCacheTTL
	}
	payload, _ := json.Marshal(claims)
	if err := s.Cache.Set(ctx, tokenCachePrefix+raw, payload, ttl); err != nil {
		l.Warn("token cache write failed", slog.Any("error", err))
	}

	return claims, nil
}

// Block revokes a token for the remainder of its lifetime. The token is
// decoded without signature verification: revoking garbage is harmless, and
// expiry bounds how long the entry lives either way.
func (s *TokenService) Block(ctx context.Context, raw string) error {
	claims, err := s.Codec.Decode(raw)
	if err != nil {
		return err
	}

	ttl := claims.Remaining(time.Now())
	if ttl < minCacheTTL {
		ttl = minCacheTTL
	}
	if err := s.Cache.Set(ctx, blockCachePrefix+raw, []byte("1"), ttl); err != nil {
		return err
	}

	// Drop any cached verdict so the block takes effect immediately.
	if err := s.Cache.Delete(ctx, tokenCachePrefix+raw); err != nil {
		slogx.FromContext(ctx).Warn("token cache eviction failed", slog.Any("error", err))
	}
	return nil
}
