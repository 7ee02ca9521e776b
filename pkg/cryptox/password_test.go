package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	require.True(t, VerifyPassword("secret123", hash))
	require.False(t, VerifyPassword("wrong", hash))
}

func TestHashPasswordRejectsBadCost(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("secret123", 99)
	require.Error(t, err)
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	t.Parallel()

	require.False(t, VerifyPassword("secret123", "not-a-bcrypt-hash"))
}
