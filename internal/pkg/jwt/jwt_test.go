//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"lendit/internal/pkg/config"
	"lendit/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *jwt.Service {
	t.Helper()
	cfg := config.NewTestConfig()
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	require.NoError(t, err)
	return jwt.NewService(cfg.JWT.Secret, duration)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestValidateToken(t *testing.T) {
	svc := newService(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewService("a-different-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewService(config.NewTestConfig().JWT.Secret, -time.Minute)
		token, err := expired.GenerateToken(uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}
