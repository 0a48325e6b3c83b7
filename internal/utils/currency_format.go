package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIDR formats a whole-rupiah amount with id-ID thousand grouping.
// Example: 155000 -> "155.000".
func FormatIDR(amount decimal.Decimal) string {
	s := amount.Round(0).String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatRupiah renders an amount with the "Rp" currency prefix.
func FormatRupiah(amount decimal.Decimal) string {
	return "Rp " + FormatIDR(amount)
}
