package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maskhan/convert_backend/internal/apperrors"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/dto"
	"github.com/maskhan/convert_backend/internal/middleware"
	"github.com/maskhan/convert_backend/pkg/config"
)

// authHandler handles merchant admin authentication requests.
type authHandler struct {
	tokenService portssvc.TokenSvcFacade
	tokenExpiry  time.Duration
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(ts portssvc.TokenSvcFacade, tokenExpiry time.Duration) *authHandler {
	return &authHandler{
		tokenService: ts,
		tokenExpiry:  tokenExpiry,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, ts portssvc.TokenSvcFacade) {
	h := newAuthHandler(ts, cfg.JWTExpiryDuration)

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
	}
}

// login godoc
// @Summary Admin login
// @Description Verifies the merchant admin password and returns a bearer token for the guarded ledger endpoints
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Wrong password or admin login not configured"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, err := h.tokenService.Login(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Admin login rejected", slog.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			logger.Error("Failed to issue token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokenExpiry),
	})
}
