package services

import (
	"github.com/maskhan/convert_backend/internal/core/domain"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
	"github.com/maskhan/convert_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// DefaultCryptoTiers returns the merchant's tiered crypto fee schedule.
// Bounds are inclusive gross IDR amounts; the final tier is unbounded and
// carries the fixed ceiling fee.
func DefaultCryptoTiers() []domain.FeeTier {
	return []domain.FeeTier{
		{UpperBound: decimal.NewFromInt(10_000), Fee: decimal.NewFromInt(1_500)},
		{UpperBound: decimal.NewFromInt(50_000), Fee: decimal.NewFromInt(2_000)},
		{UpperBound: decimal.NewFromInt(200_000), Fee: decimal.NewFromInt(5_000)},
		{UpperBound: decimal.NewFromInt(1_000_000), Fee: decimal.NewFromInt(10_000)},
		{Unbounded: true, Fee: decimal.NewFromInt(25_000)},
	}
}

// E-wallet fee bands: flat fees by amount range, collapsing to
// max(flat minimum, percent) above the highest band.
var (
	ewalletBandOne    = decimal.NewFromInt(49_999)
	ewalletBandOneFee = decimal.NewFromInt(1_000)
	ewalletBandTwo    = decimal.NewFromInt(99_999)
	ewalletMinimumFee = decimal.NewFromInt(1_500)
	ewalletPercent    = decimal.NewFromFloat(0.5)
)

// feeService implements FeeScheduleSvc. All computation is pure decimal
// arithmetic; the service carries no mutable state.
type feeService struct {
	cryptoTiers []domain.FeeTier
}

// NewFeeService creates a fee schedule service over the given crypto tiers.
// Pass nil to use the default schedule.
func NewFeeService(cryptoTiers []domain.FeeTier) portssvc.FeeScheduleSvc {
	if len(cryptoTiers) == 0 {
		cryptoTiers = DefaultCryptoTiers()
	}
	return &feeService{cryptoTiers: cryptoTiers}
}

// Compute evaluates a tagged fee rule against a gross amount.
func (s *feeService) Compute(amount decimal.Decimal, rule domain.FeeRule) decimal.Decimal {
	switch rule.Kind {
	case domain.FeeFixed:
		return rule.Amount
	case domain.FeePercent:
		return utils.RoundToWholeUnit(amount.Mul(rule.Percent).Div(oneHundred))
	case domain.FeeSchedule:
		return scheduleFee(amount, rule.Tiers)
	}
	return decimal.Zero
}

// scheduleFee scans tiers in ascending order and returns the fee of the first
// tier whose bound is >= amount. An amount exactly on a boundary belongs to
// that tier, not the next (cheaper tier wins).
func scheduleFee(amount decimal.Decimal, tiers []domain.FeeTier) decimal.Decimal {
	for _, t := range tiers {
		if t.Unbounded || amount.LessThanOrEqual(t.UpperBound) {
			return t.Fee
		}
	}
	return decimal.Zero
}

// CryptoFee looks up the tiered fee for a gross IDR amount.
func (s *feeService) CryptoFee(gross decimal.Decimal) decimal.Decimal {
	return s.Compute(gross, domain.FeeRule{Kind: domain.FeeSchedule, Tiers: s.cryptoTiers})
}

// EwalletFee applies the banded e-wallet fee: a flat fee per band, and above
// the highest band whichever is larger of the flat minimum and the percentage.
func (s *feeService) EwalletFee(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(ewalletBandOne) {
		return ewalletBandOneFee
	}
	if amount.LessThanOrEqual(ewalletBandTwo) {
		return ewalletMinimumFee
	}
	pct := s.Compute(amount, domain.FeeRule{Kind: domain.FeePercent, Percent: ewalletPercent})
	if pct.GreaterThan(ewalletMinimumFee) {
		return pct
	}
	return ewalletMinimumFee
}

// PulsaPayout returns round(amount × percent/100) in whole IDR. No fee line is
// reported separately for pulsa; the fee is the complement of the payout.
func (s *feeService) PulsaPayout(amount, percent decimal.Decimal) decimal.Decimal {
	return utils.RoundToWholeUnit(amount.Mul(percent).Div(oneHundred))
}
