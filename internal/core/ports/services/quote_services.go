package services

import (
	"context"
	"time"

	"github.com/maskhan/convert_backend/internal/core/domain"
	"github.com/maskhan/convert_backend/internal/dto"
)

// QuoteSvcFacade is the locked-quote state machine: it fixes a rate and fee at
// a point in time, holds the quote for its TTL, and arbitrates confirmation.
type QuoteSvcFacade interface {
	// Open computes and locks a new quote. Valid from Idle or Locked; a
	// still-open quote is implicitly discarded without being recorded.
	// Returns apperrors.ErrValidation for bad or missing input.
	Open(ctx context.Context, req dto.OpenQuoteRequest) (*domain.Quote, error)

	// Confirm finalizes the locked quote: assigns an invoice id, appends the
	// ledger entry and returns it. Returns apperrors.ErrNoActiveQuote when
	// nothing is locked and apperrors.ErrQuoteExpired when the TTL elapsed
	// (in which case no ledger write happens).
	Confirm(ctx context.Context) (*domain.LedgerEntry, error)

	// Cancel discards the locked quote with no ledger effect. Safe to call
	// when nothing is locked.
	Cancel(ctx context.Context) error

	// Current returns a copy of the locked quote and its remaining TTL,
	// or apperrors.ErrNoActiveQuote.
	Current(ctx context.Context) (*domain.Quote, time.Duration, error)
}

// InvoiceIDSource produces unique invoice identifiers.
type InvoiceIDSource interface {
	Next() string
}
