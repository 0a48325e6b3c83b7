package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteState indicates where a quote is in its lifecycle.
type QuoteState string

const (
	QuoteIdle      QuoteState = "IDLE"      // no open quote
	QuoteLocked    QuoteState = "LOCKED"    // quote open, countdown running
	QuoteConfirmed QuoteState = "CONFIRMED" // terminal, produced a ledger entry
	QuoteCancelled QuoteState = "CANCELLED" // terminal, produced nothing
	QuoteExpired   QuoteState = "EXPIRED"   // terminal, produced nothing
)

// Quote is an immutable, time-bounded price computation awaiting confirmation.
// It combines a rate sample and a fee schedule result at a fixed point in time.
type Quote struct {
	InvoiceCandidateID string          `json:"invoiceCandidateID"` // provisional id; the ledger id is assigned at confirm time
	Channel            ChannelKind     `json:"channel"`
	RequestedUnits     decimal.Decimal `json:"requestedUnits"` // source-currency units (USD for crypto, IDR otherwise)
	Rate               RateSample      `json:"rate"`
	Gross              decimal.Decimal `json:"gross"` // requestedUnits × rate, whole destination units
	Fee                decimal.Decimal `json:"fee"`
	Net                decimal.Decimal `json:"net"` // gross − fee, rounded to the settlement granularity
	Meta               ChannelMeta     `json:"channelMeta"`
	Target             string          `json:"target,omitempty"` // destination address/account/number
	CreatedAt          time.Time       `json:"createdAt"`
	TTL                time.Duration   `json:"ttl"`
}

// ExpiresAt returns the instant after which the quote can no longer be confirmed.
func (q Quote) ExpiresAt() time.Time {
	return q.CreatedAt.Add(q.TTL)
}

// Remaining derives the time left on the lock from the current time.
// It never returns a negative duration.
func (q Quote) Remaining(now time.Time) time.Duration {
	r := q.TTL - now.Sub(q.CreatedAt)
	if r < 0 {
		return 0
	}
	return r
}
