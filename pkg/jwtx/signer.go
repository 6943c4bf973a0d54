package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSecret reports a signer or verifier constructed without key material.
	ErrNoSecret = errors.New("jwtx: empty signing secret")
)

// Signer signs a Claims record into a compact JWT. It holds the process-wide
// signing secret; the signing itself is a stateless transform over the claims.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// NewSignerHS256 creates an HMAC-SHA256 signer from a shared secret.
func NewSignerHS256(secret []byte) (Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &hs256Signer{secret: secret}, nil
}

type hs256Signer struct {
	secret []byte
}

func (s *hs256Signer) Alg() string { return "HS256" }

func (s *hs256Signer) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}
