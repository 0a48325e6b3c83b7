package dto

import "time"

// LoginRequest carries the merchant admin password.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
