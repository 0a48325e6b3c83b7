package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maskhan/convert_backend/internal/apperrors"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/dto"
	"github.com/maskhan/convert_backend/internal/middleware"
)

// quoteHandler handles HTTP requests for the locked-quote lifecycle.
type quoteHandler struct {
	quoteService        portssvc.QuoteSvcFacade
	notificationService portssvc.NotificationSvcFacade
}

// newQuoteHandler creates a new quoteHandler.
func newQuoteHandler(qs portssvc.QuoteSvcFacade, ns portssvc.NotificationSvcFacade) *quoteHandler {
	return &quoteHandler{
		quoteService:        qs,
		notificationService: ns,
	}
}

// registerQuoteRoutes registers routes related to quotes.
func registerQuoteRoutes(rg *gin.RouterGroup, qs portssvc.QuoteSvcFacade, ns portssvc.NotificationSvcFacade) {
	h := newQuoteHandler(qs, ns)

	quote := rg.Group("/quote")
	{
		quote.POST("", h.openQuote)
		quote.GET("", h.getQuote)
		quote.POST("/confirm", h.confirmQuote)
		quote.DELETE("", h.cancelQuote)
	}
}

// openQuote godoc
// @Summary Open a locked quote
// @Description Computes gross, fee and net for the request and locks the quote for its TTL. A still-open quote is superseded.
// @Tags quote
// @Accept  json
// @Produce  json
// @Param   request body dto.OpenQuoteRequest true "Quote request"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /quote [post]
func (h *quoteHandler) openQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenQuote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	quote, err := h.quoteService.Open(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error opening quote", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to open quote", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open quote"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuoteResponse(quote, quote.TTL))
}

// getQuote godoc
// @Summary Get the currently locked quote
// @Description Returns the open quote and its remaining TTL, derived from the clock on demand
// @Tags quote
// @Produce  json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} map[string]string "No active quote"
// @Router /quote [get]
func (h *quoteHandler) getQuote(c *gin.Context) {
	quote, remaining, err := h.quoteService.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveQuote) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read quote"})
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote, remaining))
}

// confirmQuote godoc
// @Summary Confirm the locked quote
// @Description Records the quote into the ledger and returns the entry with the fulfillment handoff payload
// @Tags quote
// @Produce  json
// @Success 201 {object} dto.ConfirmQuoteResponse
// @Failure 409 {object} map[string]string "No active quote"
// @Failure 410 {object} map[string]string "Quote expired"
// @Failure 500 {object} map[string]string "Ledger failure"
// @Router /quote/confirm [post]
func (h *quoteHandler) confirmQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entry, err := h.quoteService.Confirm(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoActiveQuote):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrQuoteExpired):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to confirm quote", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm quote"})
		}
		return
	}

	handoff := h.notificationService.BuildHandoff(*entry)

	logger.Info("Quote confirmed", slog.String("invoice_id", entry.InvoiceID))
	c.JSON(http.StatusCreated, dto.ConfirmQuoteResponse{
		Entry:   dto.ToLedgerEntryResponse(*entry),
		Handoff: handoff,
	})
}

// cancelQuote godoc
// @Summary Cancel the locked quote
// @Description Discards the open quote without any ledger effect; safe to call with nothing locked
// @Tags quote
// @Produce  json
// @Success 204 "Cancelled"
// @Router /quote [delete]
func (h *quoteHandler) cancelQuote(c *gin.Context) {
	if err := h.quoteService.Cancel(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel quote"})
		return
	}
	c.Status(http.StatusNoContent)
}
