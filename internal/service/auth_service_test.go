package service

import (
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-not-for-production-use"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newAuthService(t)

	user, err := s.Register(&RegisterRequest{
		Name:     "김하늘",
		Email:    "haneul@test.dev",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	// Never store the raw password.
	assert.NotEqual(t, "s3cret-password", user.Password)

	token, logged, err := s.Login("haneul@test.dev", "s3cret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := util.ParseJWT(token, "test-secret-not-for-production-use")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newAuthService(t)

	_, err := s.Register(&RegisterRequest{Name: "a", Email: "dup@test.dev", Password: "password-one"})
	require.NoError(t, err)

	_, err = s.Register(&RegisterRequest{Name: "b", Email: "dup@test.dev", Password: "password-two"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newAuthService(t)

	_, err := s.Register(&RegisterRequest{Name: "a", Email: "a@test.dev", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = s.Login("a@test.dev", "wrong-horse")
	assert.Error(t, err)

	_, _, err = s.Login("nobody@test.dev", "whatever")
	assert.Error(t, err)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	s := newAuthService(t)

	user, err := s.Register(&RegisterRequest{Name: "a", Email: "a@test.dev", Password: "correct-horse"})
	require.NoError(t, err)

	user.Disabled = true
	require.NoError(t, s.UserRepo.Update(user))

	_, _, err = s.Login("a@test.dev", "correct-horse")
	assert.Error(t, err)
}
