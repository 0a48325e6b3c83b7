package repositories

import (
	"context"

	"github.com/maskhan/convert_backend/internal/core/domain"
)

// LedgerRepository defines persistence operations for the confirmed-transaction
// ledger. The store is append-ordered: the most recent entry is read first.
type LedgerRepository interface {
	// Prepend inserts the entry at the head of the ledger. A duplicate
	// invoice id is a fatal integrity violation (apperrors.ErrLedgerIntegrity).
	Prepend(ctx context.Context, entry domain.LedgerEntry) error

	// FindAll returns every entry, most recent first.
	FindAll(ctx context.Context) ([]domain.LedgerEntry, error)

	// DeleteByInvoiceID removes the matching entry. Removing an absent id is a no-op.
	DeleteByInvoiceID(ctx context.Context, invoiceID string) error

	// DeleteAll empties the ledger.
	DeleteAll(ctx context.Context) error
}

// RepositoryProvider bundles the repositories handed to the service container.
type RepositoryProvider struct {
	LedgerRepo LedgerRepository
}
