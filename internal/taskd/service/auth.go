package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskdhq/taskd/internal/taskd/domain"
	"github.com/taskdhq/taskd/internal/taskd/store"
	"github.com/taskdhq/taskd/pkg/cryptox"
	"github.com/taskdhq/taskd/pkg/idx"
	"github.com/taskdhq/taskd/pkg/jwtx"
	"github.com/taskdhq/taskd/pkg/slogx"
)

// AuthService handles registration and login. The password hashing strategy
// and token signer are injected so neither algorithm is hardwired here.
type AuthService struct {
	Store     store.Store
	Hasher    cryptox.Hasher
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration

	// Clock is used for token iat/exp. Nil means time.Now; tests inject a
	// fixed clock for deterministic claims.
	Clock func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// SignUp registers a new user. The plaintext password is hashed immediately
// and never stored or logged.
func (s *AuthService) SignUp(ctx context.Context, username, password string) error {
	l := slogx.FromContext(ctx)

	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		// Two racing signups can both pass the existence check above; the
		// UNIQUE constraint decides and the loser gets the same conflict.
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	l.Info("user registered", slog.String("user_id", u.ID), slog.String("username", u.Username))
	return nil
}

// SignIn verifies credentials and issues a signed access token. An unknown
// username and a wrong password both fail with ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, jwtx.Claims, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", jwtx.Claims{}, ErrInvalidCredentials
		}
		return "", jwtx.Claims{}, fmt.Errorf("signin lookup: %w", err)
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return "", jwtx.Claims{}, ErrInvalidCredentials
		}
		l.Error("password verify failed", slog.String("user_id", u.ID), slog.Any("error", err))
		return "", jwtx.Claims{}, fmt.Errorf("verify password: %w", err)
	}

	claims := jwtx.NewAccessClaims(u.ID, u.Username, s.Issuer, s.AccessTTL, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", jwtx.Claims{}, fmt.Errorf("sign token: %w", err)
	}

	l.Info("user signed in", slog.String("user_id", u.ID))
	return token, claims, nil
}
