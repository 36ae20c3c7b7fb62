package service

import (
	"context"
	"testing"
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/entity"
	infraRepo "github.com/Selvam-T/POS-sub000/internal/infrastructure/repository"
	"github.com/Selvam-T/POS-sub000/pkg/apperror"
	"github.com/Selvam-T/POS-sub000/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(infraRepo.NewCashierRepository(env.db), jwtManager), env
}

func seedCashier(t *testing.T, env *testEnv, name, pin string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&entity.Cashier{
		Name:    name,
		PINHash: string(hash),
		Role:    "cashier",
		Active:  active,
	}).Error)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, env := newAuthService(t)
	seedCashier(t, env, "alice", "1234", true)

	result, err := svc.Login(context.Background(), "alice", "1234")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "alice", result.Cashier.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, env := newAuthService(t)
	seedCashier(t, env, "alice", "1234", true)
	seedCashier(t, env, "bob", "9999", false)

	_, err := svc.Login(context.Background(), "alice", "0000")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "1234")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	// Deactivated accounts fail the same way as wrong PINs.
	_, err = svc.Login(context.Background(), "bob", "9999")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, env := newAuthService(t)
	seedCashier(t, env, "alice", "1234", true)

	login, err := svc.Login(context.Background(), "alice", "1234")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}
