package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/dto"
	"github.com/maskhan/convert_backend/internal/middleware"
	"github.com/maskhan/convert_backend/pkg/config"
)

// ledgerHandler handles HTTP requests for the confirmed-transaction ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the ledger.
// Reading is public; deletion requires an admin bearer token.
func registerLedgerRoutes(rg *gin.RouterGroup, cfg *config.Config, ls portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ls)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.listEntries)

		admin := ledger.Group("")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			admin.DELETE("/:invoiceID", h.removeEntry)
			admin.DELETE("", h.clearLedger)
		}
	}
}

// listEntries godoc
// @Summary List confirmed transactions
// @Description Returns every ledger entry, most recent first
// @Tags ledger
// @Produce  json
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 500 {object} map[string]string "Failed to read ledger"
// @Router /ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.ledgerService.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// removeEntry godoc
// @Summary Delete a ledger entry
// @Description Removes the entry with the given invoice id; succeeds even when absent
// @Tags ledger
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "Deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Security BearerAuth
// @Router /ledger/{invoiceID} [delete]
func (h *ledgerHandler) removeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	if err := h.ledgerService.Remove(c.Request.Context(), invoiceID); err != nil {
		logger.Error("Failed to remove ledger entry", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	logger.Info("Ledger entry removed", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}

// clearLedger godoc
// @Summary Clear the ledger
// @Description Removes every ledger entry
// @Tags ledger
// @Produce  json
// @Success 204 "Cleared"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to clear ledger"
// @Security BearerAuth
// @Router /ledger [delete]
func (h *ledgerHandler) clearLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.ledgerService.Clear(c.Request.Context()); err != nil {
		logger.Error("Failed to clear ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear ledger"})
		return
	}

	subject, _ := middleware.GetSubjectFromContext(c)
	logger.Warn("Ledger cleared", slog.String("cleared_by", subject))
	c.Status(http.StatusNoContent)
}
