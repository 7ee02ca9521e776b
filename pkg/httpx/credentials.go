package httpx

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrMalformedCredential reports an Authorization header value that does
// not match the expected "<scheme> <token>" shape.
var ErrMalformedCredential = errors.New("httpx: malformed credential")

// Credential is the transient email/password pair carried by a Basic
// header. It is never persisted.
type Credential struct {
	Email    string
	Password string
}

// ParseBasicCredential decodes an "Authorization: Basic <base64>" header
// value into its email/password pair. The scheme word must be exactly
// "Basic" and the decoded payload must contain a colon separating email
// from password.
func ParseBasicCredential(raw string) (Credential, error) {
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || parts[0] != "Basic" {
		return Credential{}, ErrMalformedCredential
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return Credential{}, ErrMalformedCredential
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" {
		return Credential{}, ErrMalformedCredential
	}

	return Credential{Email: email, Password: password}, nil
}

// ParseBearerToken extracts the raw token from an
// "Authorization: Bearer <token>" header value. The scheme word is matched
// case-insensitively. No cryptographic check happens here.
func ParseBearerToken(raw string) (string, error) {
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedCredential
	}
	return parts[1], nil
}
