package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sumitk/ai-interviewer/internal/config"
)

func newAuthFixture(t *testing.T) HRAuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewHRAuthService(config.HRConfig{
		Email:        "hr@example.com",
		PasswordHash: string(hash),
		JWTSecret:    "test-signing-secret",
		TokenTTL:     time.Hour,
	})
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login("hr@example.com", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("hr@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("wrong email", func(t *testing.T) {
		_, err := svc.Login("someone@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestValidateToken(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login("hr@example.com", "s3cret")
	require.NoError(t, err)

	t.Run("issued token validates", func(t *testing.T) {
		assert.NoError(t, svc.ValidateToken(resp.Token))
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		assert.Error(t, svc.ValidateToken(resp.Token+"x"))
	})

	t.Run("token from another secret rejected", func(t *testing.T) {
		other := NewHRAuthService(config.HRConfig{
			Email:        "hr@example.com",
			PasswordHash: "$2a$04$invalidhashinvalidhashinvalidha",
			JWTSecret:    "different-secret",
			TokenTTL:     time.Hour,
		})
		assert.Error(t, other.ValidateToken(resp.Token))
	})

	t.Run("garbage rejected", func(t *testing.T) {
		assert.Error(t, svc.ValidateToken("not-a-jwt"))
	})
}
