// Package cryptox wraps the password hashing primitives used by the
// catalog's auth flows.
package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashRounds is the bcrypt cost used when HASH_ROUNDS is unset.
const DefaultHashRounds = 10

// HashPassword produces a salted bcrypt hash of password. The cost factor
// comes from configuration (HASH_ROUNDS), never a hardcoded constant, so
// deployments can tune it to their hardware.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("cryptox: bcrypt cost %d out of range [%d,%d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A mismatch is not an error; callers decide how to surface it.
func VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
