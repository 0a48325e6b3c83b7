package dto

import (
	"time"

	"github.com/maskhan/convert_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenQuoteRequest defines the structure for opening a locked quote.
// Units are source-currency units: USD for the crypto channel, IDR otherwise.
type OpenQuoteRequest struct {
	Channel  string          `json:"channel" binding:"required,oneof=crypto pulsa ewallet"`
	Units    decimal.Decimal `json:"units" binding:"required,dgt0"`
	Exchange string          `json:"exchange,omitempty"`
	Network  string          `json:"network,omitempty"`
	Operator string          `json:"operator,omitempty"`
	Target   string          `json:"target,omitempty"`
}

// QuoteResponse defines the structure for API responses containing a locked quote.
type QuoteResponse struct {
	InvoiceCandidateID string          `json:"invoiceCandidateID"`
	Channel            string          `json:"channel"`
	Units              decimal.Decimal `json:"units"`
	Rate               decimal.Decimal `json:"rate"`
	RateSampledAt      time.Time       `json:"rateSampledAt"`
	Gross              decimal.Decimal `json:"gross"`
	Fee                decimal.Decimal `json:"fee"`
	Net                decimal.Decimal `json:"net"`
	Exchange           string          `json:"exchange,omitempty"`
	Network            string          `json:"network,omitempty"`
	Operator           string          `json:"operator,omitempty"`
	Target             string          `json:"target,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	ExpiresAt          time.Time       `json:"expiresAt"`
	RemainingSeconds   int64           `json:"remainingSeconds"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO.
func ToQuoteResponse(q *domain.Quote, remaining time.Duration) QuoteResponse {
	return QuoteResponse{
		InvoiceCandidateID: q.InvoiceCandidateID,
		Channel:            string(q.Channel),
		Units:              q.RequestedUnits,
		Rate:               q.Rate.Value,
		RateSampledAt:      q.Rate.SampledAt,
		Gross:              q.Gross,
		Fee:                q.Fee,
		Net:                q.Net,
		Exchange:           q.Meta.Exchange,
		Network:            q.Meta.Network,
		Operator:           q.Meta.Operator,
		Target:             q.Target,
		CreatedAt:          q.CreatedAt,
		ExpiresAt:          q.ExpiresAt(),
		RemainingSeconds:   int64(remaining / time.Second),
	}
}
