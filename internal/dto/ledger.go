package dto

import (
	"time"

	"github.com/maskhan/convert_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountsResponse carries the monetary snapshot of a ledger entry.
type AmountsResponse struct {
	Gross decimal.Decimal `json:"gross"`
	Fee   decimal.Decimal `json:"fee"`
	Net   decimal.Decimal `json:"net"`
}

// LedgerEntryResponse defines the API shape of a confirmed transaction.
type LedgerEntryResponse struct {
	InvoiceID   string             `json:"invoiceId"`
	Mode        string             `json:"mode"`
	ChannelMeta domain.ChannelMeta `json:"channelMeta"`
	Amounts     AmountsResponse    `json:"amounts"`
	Target      string             `json:"target"`
	ConfirmedAt time.Time          `json:"confirmedAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		InvoiceID:   e.InvoiceID,
		Mode:        string(e.Mode),
		ChannelMeta: e.Meta,
		Amounts: AmountsResponse{
			Gross: e.Amounts.Gross,
			Fee:   e.Amounts.Fee,
			Net:   e.Amounts.Net,
		},
		Target:      e.Target,
		ConfirmedAt: e.ConfirmedAt,
	}
}

// ToListLedgerEntryResponse converts a slice of entries, preserving order.
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToLedgerEntryResponse(e)
	}
	return responses
}

// HandoffPayload is the outbound notification built for a confirmed entry.
// The core supplies it; dispatch belongs to an external collaborator.
type HandoffPayload struct {
	InvoiceID   string `json:"invoiceId"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}

// ConfirmQuoteResponse bundles the recorded entry with its handoff payload.
type ConfirmQuoteResponse struct {
	Entry   LedgerEntryResponse `json:"entry"`
	Handoff HandoffPayload      `json:"handoff"`
}
