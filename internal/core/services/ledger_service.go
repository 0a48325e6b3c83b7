package services

import (
	"context"
	"fmt"

	"github.com/maskhan/convert_backend/internal/apperrors"
	"github.com/maskhan/convert_backend/internal/core/domain"
	portsrepo "github.com/maskhan/convert_backend/internal/core/ports/repositories"
	portssvc "github.com/maskhan/convert_backend/internal/core/ports/services"
)

// ledgerService provides business logic over the append-only ledger store.
type ledgerService struct {
	repo portsrepo.LedgerRepository
}

// NewLedgerService creates a new LedgerSvcFacade over the given repository.
func NewLedgerService(repo portsrepo.LedgerRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{repo: repo}
}

// Append records a confirmed entry at the head of the ledger.
func (s *ledgerService) Append(ctx context.Context, entry domain.LedgerEntry) error {
	if entry.InvoiceID == "" {
		return fmt.Errorf("%w: ledger entry missing invoice id", apperrors.ErrValidation)
	}
	if err := s.repo.Prepend(ctx, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// List returns all entries, most recent first.
func (s *ledgerService) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry with the given invoice id; no-op when absent.
func (s *ledgerService) Remove(ctx context.Context, invoiceID string) error {
	if invoiceID == "" {
		return fmt.Errorf("%w: invoice id required", apperrors.ErrValidation)
	}
	if err := s.repo.DeleteByInvoiceID(ctx, invoiceID); err != nil {
		return fmt.Errorf("failed to remove ledger entry: %w", err)
	}
	return nil
}

// Clear empties the ledger.
func (s *ledgerService) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}
	return nil
}
