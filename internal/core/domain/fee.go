package domain

import "github.com/shopspring/decimal"

// FeeRuleKind tags the variant of a fee rule.
type FeeRuleKind string

const (
	FeeFixed    FeeRuleKind = "FIXED"    // flat amount
	FeePercent  FeeRuleKind = "PERCENT"  // percentage of the amount
	FeeSchedule FeeRuleKind = "SCHEDULE" // tiered lookup
)

// FeeTier maps a contiguous amount range to a fixed fee. Tiers are ordered
// ascending by UpperBound; the final tier of a schedule is unbounded so that
// every non-negative amount matches exactly one tier.
type FeeTier struct {
	UpperBound decimal.Decimal `json:"upperBound"` // inclusive; ignored when Unbounded
	Unbounded  bool            `json:"unbounded,omitempty"`
	Fee        decimal.Decimal `json:"fee"`
}

// FeeRule is the tagged fee variant consumed by the fee schedule service.
// Exactly one of Amount, Percent or Tiers is meaningful depending on Kind.
type FeeRule struct {
	Kind    FeeRuleKind
	Amount  decimal.Decimal // FeeFixed
	Percent decimal.Decimal // FeePercent, e.g. 0.5 for 0.5%
	Tiers   []FeeTier       // FeeSchedule
}
