package utils

import "github.com/shopspring/decimal"

// RoundToWholeUnit rounds an amount to whole currency units (half away from zero).
// Gross and fee amounts are rounded this way before any further arithmetic so
// fractional rupiah never leak into a settlement.
func RoundToWholeUnit(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}

// RoundToGranularity rounds an amount to the nearest multiple of granularity,
// the smallest denomination the fulfillment channel accepts.
// Example: granularity 500 maps 155,240 to 155,000 and 155,250 to 155,500.
func RoundToGranularity(amount, granularity decimal.Decimal) decimal.Decimal {
	if granularity.LessThanOrEqual(decimal.NewFromInt(1)) {
		return amount.Round(0)
	}
	return amount.Div(granularity).Round(0).Mul(granularity)
}
