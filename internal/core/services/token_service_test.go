package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maskhan/convert_backend/internal/apperrors"
	"github.com/maskhan/convert_backend/internal/core/services"
	"github.com/maskhan/convert_backend/internal/utils"
	"github.com/maskhan/convert_backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTestConfig(t *testing.T, password string) *config.Config {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "convert-backend",
		AdminPasswordHash: hash,
	}
}

func TestLogin_Success(t *testing.T) {
	cfg := tokenTestConfig(t, "hunter2")
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := services.NewTokenService(cfg, services.WithTokenClock(func() time.Time { return now }))

	signed, err := svc.Login(context.Background(), "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)

	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "convert-backend", claims.Issuer)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestLogin_WrongPassword(t *testing.T) {
	cfg := tokenTestConfig(t, "hunter2")
	svc := services.NewTokenService(cfg)

	_, err := svc.Login(context.Background(), "not-the-password")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLogin_NotConfigured(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour}
	svc := services.NewTokenService(cfg)

	_, err := svc.Login(context.Background(), "anything")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
