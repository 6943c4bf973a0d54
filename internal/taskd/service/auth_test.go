package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskdhq/taskd/internal/taskd/service"
)

func TestSignUpAndSignIn(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "alice", "CorrectHorse1!"))

	token, claims, err := auth.SignIn(ctx, "alice", "CorrectHorse1!")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, testIssuer, claims.Issuer)
	require.Equal(t, testClock().Unix(), claims.IssuedAt.Unix())
	require.Equal(t, testClock().Add(testTTL).Unix(), claims.ExpiresAt.Unix())
}

func TestSignUpNeverStoresPlaintext(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "alice", "SuperSecretPassword"))

	u, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotContains(t, u.PasswordHash, "SuperSecretPassword")
}

func TestSignUpDuplicateUsername(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "alice", "CorrectHorse1!"))
	require.ErrorIs(t, auth.SignUp(ctx, "alice", "AnotherPass2@"), service.ErrUsernameTaken)
}

func TestSignInFailureParity(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "alice", "CorrectHorse1!"))

	_, _, unknownUserErr := auth.SignIn(ctx, "nobody", "CorrectHorse1!")
	_, _, wrongPasswordErr := auth.SignIn(ctx, "alice", "WrongPassword1!")

	// Unknown identity and wrong password must be indistinguishable.
	require.ErrorIs(t, unknownUserErr, service.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPasswordErr, service.ErrInvalidCredentials)
	require.Equal(t, unknownUserErr.Error(), wrongPasswordErr.Error())
}

func TestSignInRejectsAlteredPassword(t *testing.T) {
	st := newTestStore(t)
	auth := newAuthService(t, st)
	ctx := context.Background()

	require.NoError(t, auth.SignUp(ctx, "alice", "CorrectHorse1!"))

	_, _, err := auth.SignIn(ctx, "alice", "CorrectHorse1?")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = auth.SignIn(ctx, "alice", "CorrectHorse1!")
	require.NoError(t, err)
}
