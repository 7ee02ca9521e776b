package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testIssuer() *Issuer {
	return &Issuer{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     DefaultAccessTokenTTL,
		RefreshTTL:    DefaultRefreshTokenTTL,
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	i := testIssuer()
	sub := Subject{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Role: "user"}

	t.Run("access token round trip", func(t *testing.T) {
		raw, err := i.Issue(sub, false)
		require.NoError(t, err)

		claims, err := i.VerifyExpect(raw, false)
		require.NoError(t, err)
		require.Equal(t, sub.ID, claims.UserID())
		require.Equal(t, "user", claims.Role)
		require.Equal(t, TypeAccess, claims.TokenType)
		require.NotNil(t, claims.IssuedAt)
		require.NotNil(t, claims.ExpiresAt)
	})

	t.Run("access token rejected by refresh expectation", func(t *testing.T) {
		raw, err := i.Issue(sub, false)
		require.NoError(t, err)

		_, err = i.VerifyExpect(raw, true)
		require.ErrorIs(t, err, ErrWrongType)
	})

	t.Run("refresh token rejected by access expectation", func(t *testing.T) {
		raw, err := i.Issue(sub, true)
		require.NoError(t, err)

		_, err = i.VerifyExpect(raw, false)
		require.ErrorIs(t, err, ErrWrongType)
	})
}

func TestVerifySigningDomains(t *testing.T) {
	t.Parallel()

	i := testIssuer()

	// A token claiming to be "access" but signed with the refresh secret
	// must fail signature verification under the access secret.
	now := time.Now()
	forged := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType: TypeAccess,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, forged).SignedString(i.RefreshSecret)
	require.NoError(t, err)

	_, err = i.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyBadType(t *testing.T) {
	t.Parallel()

	i := testIssuer()
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType: "session",
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.AccessSecret)
	require.NoError(t, err)

	_, err = i.Verify(raw)
	require.ErrorIs(t, err, ErrBadType)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	i := testIssuer()
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		TokenType: TypeAccess,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.AccessSecret)
	require.NoError(t, err)

	_, err = i.Verify(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestDecodeDoesNotVerify(t *testing.T) {
	t.Parallel()

	i := testIssuer()
	raw, err := i.Issue(Subject{ID: "u1", Role: "user"}, false)
	require.NoError(t, err)

	// Decode works even with no knowledge of the secret.
	stranger := &Issuer{AccessSecret: []byte("other"), RefreshSecret: []byte("other")}
	claims, err := stranger.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID())

	_, err = stranger.Decode("garbage")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}}
	require.InDelta(t, time.Minute, c.Remaining(now), float64(time.Second))
	require.Negative(t, c.Remaining(now.Add(2*time.Minute)))
	require.Zero(t, Claims{}.Remaining(now))
}
