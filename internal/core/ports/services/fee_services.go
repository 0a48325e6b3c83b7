package services

import (
	"github.com/maskhan/convert_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeeScheduleSvc computes fees and payouts. All methods are pure and
// deterministic: identical inputs always yield identical output.
type FeeScheduleSvc interface {
	// Compute evaluates a tagged fee rule against a gross amount.
	Compute(amount decimal.Decimal, rule domain.FeeRule) decimal.Decimal

	// CryptoFee looks up the tiered crypto fee for a gross IDR amount.
	CryptoFee(gross decimal.Decimal) decimal.Decimal

	// EwalletFee returns the banded e-wallet fee for an IDR amount.
	EwalletFee(amount decimal.Decimal) decimal.Decimal

	// PulsaPayout returns the amount credited for a mobile top-up given the
	// operator payout percent; the fee is the complement of the payout.
	PulsaPayout(amount, percent decimal.Decimal) decimal.Decimal
}
