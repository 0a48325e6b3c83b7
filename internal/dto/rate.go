package dto

import (
	"time"

	"github.com/maskhan/convert_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse defines the API shape of a rate sample.
type RateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	SampledAt        time.Time       `json:"sampledAt"`
}

// ToRateResponse converts a domain.RateSample to RateResponse DTO.
func ToRateResponse(s domain.RateSample) RateResponse {
	return RateResponse{
		FromCurrencyCode: s.FromCurrencyCode,
		ToCurrencyCode:   s.ToCurrencyCode,
		Rate:             s.Value,
		SampledAt:        s.SampledAt,
	}
}
