package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrNoActiveQuote indicates a confirm/cancel/inspect call while no quote is locked.
var ErrNoActiveQuote = errors.New("no active quote")

// ErrQuoteExpired indicates that the quote's TTL elapsed before confirmation.
var ErrQuoteExpired = errors.New("quote expired")

// ErrLedgerIntegrity indicates an invoice id collision in the ledger.
// This is fatal and must never be silently swallowed.
var ErrLedgerIntegrity = errors.New("ledger integrity violation")

// NewNotFoundError wraps ErrNotFound with a specific message.
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// NewValidationError wraps ErrValidation with a specific message.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
