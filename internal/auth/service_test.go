package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/foryourmind/server/internal/auth"
	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/config"
	"github.com/foryourmind/server/internal/logging"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*auth.Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := auth.NewService(store, config.JWTConfig{
		Secret:           "test-secret",
		AccessTTLMinutes: 15,
		RefreshTTLDays:   7,
	}, log)
	return svc, store
}

func TestRegister(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	user, pair, err := svc.Register(ctx, "new@example.com", "password123", "New User", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleIndividual, user.Role)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Len(t, pair.RefreshToken, 64, "32 random bytes hex-encoded")

	claims, err := svc.ValidateAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Registration provisions the default assessment.
	assessments, err := store.GetUserAssessments(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, assessments, 1)
	assert.Len(t, assessments[0].Questions, 10)

	_, _, err = svc.Register(ctx, "new@example.com", "password123", "Again", "")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "login@example.com", "password123", "User", "")
	require.NoError(t, err)

	user, pair, err := svc.Login(ctx, "login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, pair.AccessToken)

	_, _, err = svc.Login(ctx, "login@example.com", "wrong-password")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, "rotate@example.com", "password123", "User", "")
	require.NoError(t, err)

	_, next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The old token was consumed; replaying it fails.
	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// The new one still works.
	_, _, err = svc.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_ExpiredTokenFailsClosed(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "expired@example.com", "password123", "User", "")
	require.NoError(t, err)

	require.NoError(t, store.CreateRefreshToken(ctx, &models.RefreshToken{
		Token:     "stale-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, _, err = svc.Refresh(ctx, "stale-token")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)

	// The expired row is gone, so a retry reports it as unknown.
	_, _, err = svc.Refresh(ctx, "stale-token")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, pair, err := svc.Register(ctx, "logout@example.com", "password123", "User", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	require.NoError(t, svc.Logout(ctx, ""))

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
