package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/dto"
)

// rateHandler handles HTTP requests for conversion rates.
type rateHandler struct {
	rateService portssvc.RateProviderSvc
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateProviderSvc) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to rates.
func registerRateRoutes(rg *gin.RouterGroup, rs portssvc.RateProviderSvc) {
	h := newRateHandler(rs)

	rates := rg.Group("/rates")
	{
		rates.GET("/:from/:to", h.getRate)
	}
}

// getRate godoc
// @Summary Get a conversion rate sample
// @Description Returns the cached or freshly fetched rate for the currency pair
// @Tags rates
// @Produce  json
// @Param   from path string true "Source currency code (3 letters)"
// @Param   to path string true "Destination currency code (3 letters)"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Router /rates/{from}/{to} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	from := strings.ToUpper(c.Param("from"))
	to := strings.ToUpper(c.Param("to"))
	if len(from) != 3 || len(to) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	sample := h.rateService.Sample(c.Request.Context(), from, to)
	c.JSON(http.StatusOK, dto.ToRateResponse(sample))
}
