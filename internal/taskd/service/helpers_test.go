package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdhq/taskd/internal/taskd/service"
	"github.com/taskdhq/taskd/internal/taskd/store"
	"github.com/taskdhq/taskd/internal/taskd/store/drivers/sqlite"
	"github.com/taskdhq/taskd/pkg/cryptox"
	"github.com/taskdhq/taskd/pkg/jwtx"
)

const (
	testIssuer = "taskd-test"
	testTTL    = time.Hour
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "taskd-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAuthService(t *testing.T, st store.Store) *service.AuthService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte("test-secret-0123456789"))
	require.NoError(t, err)

	return &service.AuthService{
		Store:     st,
		Hasher:    cryptox.NewArgon2Hasher(),
		Signer:    signer,
		Issuer:    testIssuer,
		AccessTTL: testTTL,
		Clock:     testClock,
	}
}

// registerUser signs up a user and returns their ID.
func registerUser(t *testing.T, auth *service.AuthService, st store.Store, username, password string) string {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, auth.SignUp(ctx, username, password))

	u, err := st.Users().GetUserByUsername(ctx, username)
	require.NoError(t, err)
	return u.ID
}
