package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrBadType     = errors.New("jwtx: unrecognised token type")
	ErrWrongType   = errors.New("jwtx: token type not valid for this operation")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrMissingSecret = errors.New("jwtx: signing secret not configured")
)

// Issuer signs and verifies HS256 tokens. Access and refresh tokens live in
// independently-secreted signing domains: a token signed with one secret can
// never verify under the other, even if its type claim lies.
type Issuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Issue builds {sub, role, type, iat, exp} claims for sub and signs them
// with the secret and TTL matching the requested purpose.
func (i *Issuer) Issue(sub Subject, refresh bool) (string, error) {
	secret, ttl := i.AccessSecret, i.AccessTTL
	tokenType := TypeAccess
	if refresh {
		secret, ttl = i.RefreshSecret, i.RefreshTTL
		tokenType = TypeRefresh
	}
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	if ttl <= 0 {
		if refresh {
			ttl = DefaultRefreshTokenTTL
		} else {
			ttl = DefaultAccessTokenTTL
		}
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:      sub.Role,
		TokenType: tokenType,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Decode parses the claims WITHOUT verifying the signature. It exists so a
// caller can select the verification secret from the claimed type, and so
// revocation can read exp from a token it does not need to trust.
func (i *Issuer) Decode(raw string) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}

// Verify cryptographically validates raw using the secret that matches its
// claimed type and returns the verified claims. A type outside
// {access, refresh} is ErrBadType; a token past exp is ErrExpired.
func (i *Issuer) Verify(raw string) (Claims, error) {
	unverified, err := i.Decode(raw)
	if err != nil {
		return Claims{}, err
	}

	var secret []byte
	switch unverified.TokenType {
	case TypeAccess:
		secret = i.AccessSecret
	case TypeRefresh:
		secret = i.RefreshSecret
	default:
		return Claims{}, ErrBadType
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
	}

	return claims, nil
}

// VerifyExpect is Verify plus an operation-purpose check: refresh
// operations must present refresh tokens and vice versa.
func (i *Issuer) VerifyExpect(raw string, refresh bool) (Claims, error) {
	claims, err := i.Verify(raw)
	if err != nil {
		return Claims{}, err
	}
	if claims.IsRefresh() != refresh {
		return Claims{}, ErrWrongType
	}
	return claims, nil
}
