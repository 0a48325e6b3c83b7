package services

import "context"

// TokenSvcFacade authenticates the merchant admin and issues bearer tokens.
type TokenSvcFacade interface {
	// Login verifies the admin password and returns a signed JWT.
	// Returns apperrors.ErrValidation for a wrong password or when admin
	// login is not configured.
	Login(ctx context.Context, password string) (string, error)
}
