package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts snapshots the monetary fields of a confirmed quote.
type Amounts struct {
	Gross decimal.Decimal `json:"gross"`
	Fee   decimal.Decimal `json:"fee"`
	Net   decimal.Decimal `json:"net"`
}

// LedgerEntry is the durable record of a confirmed transaction. Entries are
// created only by a successful confirmation and are immutable thereafter.
type LedgerEntry struct {
	InvoiceID   string      `json:"invoiceId"`
	Mode        ChannelKind `json:"mode"`
	Meta        ChannelMeta `json:"channelMeta"`
	Amounts     Amounts     `json:"amounts"`
	Target      string      `json:"target"`
	ConfirmedAt time.Time   `json:"confirmedAt"`
}
