package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens. Short-lived
// for security, typical range is 15m to 1h.
const DefaultAccessTokenTTL = 1 * time.Hour

// Claims are the access-token claims for the task service. The subject is the
// user ID; Username carries the login identity for display and debugging.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username,omitempty"`
}

// NewAccessClaims builds minimally-correct claims. It is a pure function of
// its inputs: pass a fixed now in tests for deterministic iat/exp.
func NewAccessClaims(subject, username, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Username: username,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer against the expected value, if any.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used before
// it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	return c.validateExpiryAt(time.Now().UTC())
}

func (c *Claims) validateExpiryAt(now time.Time) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
