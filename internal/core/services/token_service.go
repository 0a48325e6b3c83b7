package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maskhan/convert_backend/internal/apperrors"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/utils"
	"github.com/maskhan/convert_backend/pkg/config"
)

const adminSubject = "admin"

// tokenService authenticates the merchant admin and issues JWTs used to guard
// ledger deletion endpoints.
type tokenService struct {
	cfg *config.Config
	now func() time.Time
}

// TokenServiceOption customises a tokenService.
type TokenServiceOption func(*tokenService)

// WithTokenClock overrides the clock, for tests.
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(s *tokenService) { s.now = now }
}

// NewTokenService creates a new TokenSvcFacade.
func NewTokenService(cfg *config.Config, opts ...TokenServiceOption) portssvc.TokenSvcFacade {
	s := &tokenService{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the admin password against the configured bcrypt hash and
// returns a signed token.
func (s *tokenService) Login(ctx context.Context, password string) (string, error) {
	if s.cfg.AdminPasswordHash == "" {
		return "", fmt.Errorf("%w: admin login is not configured", apperrors.ErrValidation)
	}
	if !utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash) {
		return "", fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiryDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
