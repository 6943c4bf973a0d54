package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken reports a token that failed signature or structural checks.
	ErrInvalidToken = errors.New("jwtx: invalid token")
	// ErrExpired reports a token past its exp claim.
	ErrExpired = errors.New("jwtx: token expired")
	// ErrNotYetValid reports a token used before its nbf claim.
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	// ErrIssuer reports an issuer mismatch.
	ErrIssuer = errors.New("jwtx: unexpected issuer")
)

// Verifier checks a compact JWT and returns its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// NewVerifierHS256 creates a verifier for HS256 tokens signed with secret.
func NewVerifierHS256(secret []byte) (Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &hs256Verifier{secret: secret}, nil
}

type hs256Verifier struct {
	secret []byte
}

func (v *hs256Verifier) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwtx: unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return Claims{}, ErrNotYetValid
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
