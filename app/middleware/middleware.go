package appMiddleware

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier checks bearer tokens against the pre-shared secret. It is
// built once at startup and is safe for concurrent use.
type TokenVerifier struct {
	token []byte
	hash  []byte
}

// NewTokenVerifier prefers hash when both are given. hash must be a bcrypt hash.
func NewTokenVerifier(token, hash string) (*TokenVerifier, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, errors.New("auth.tokenHash is not a valid bcrypt hash")
		}
		return &TokenVerifier{hash: []byte(hash)}, nil
	}
	if token == "" {
		return nil, errors.New("empty API token")
	}
	return &TokenVerifier{token: []byte(token)}, nil
}

func (v *TokenVerifier) Verify(candidate string) bool {
	if v.hash != nil {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare(v.token, []byte(candidate)) == 1
}
