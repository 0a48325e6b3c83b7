package services

import (
	"context"

	"github.com/maskhan/convert_backend/internal/core/domain"
)

// LedgerSvcFacade exposes the append-only confirmed-transaction ledger.
type LedgerSvcFacade interface {
	// Append records a confirmed entry at the head of the ledger.
	Append(ctx context.Context, entry domain.LedgerEntry) error

	// List returns all entries, most recent first.
	List(ctx context.Context) ([]domain.LedgerEntry, error)

	// Remove deletes the entry with the given invoice id; no-op when absent.
	Remove(ctx context.Context, invoiceID string) error

	// Clear empties the ledger.
	Clear(ctx context.Context) error
}
