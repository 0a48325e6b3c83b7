package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSample is a conversion rate observed at a point in time.
// It is immutable once produced; a fresh sample supersedes it when the
// provider's cache window elapses.
type RateSample struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Value            decimal.Decimal `json:"value"` // destination units per source unit, whole units
	SampledAt        time.Time       `json:"sampledAt"`
}

// Age returns how long ago the sample was taken.
func (s RateSample) Age(now time.Time) time.Duration {
	return now.Sub(s.SampledAt)
}
