// Package leveldbstore persists the confirmed-transaction ledger in a local
// LevelDB database. The whole history is one JSON array kept under a fixed
// key, most-recent-first; the store is durable across restarts but never
// shared across processes.
package leveldbstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/maskhan/convert_backend/internal/apperrors"
	"github.com/maskhan/convert_backend/internal/core/domain"
	portsrepo "github.com/maskhan/convert_backend/internal/core/ports/repositories"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// historyKey is the fixed key the ledger document lives under.
const historyKey = "ledger/history_v1"

// LedgerRepository implements ports.LedgerRepository on LevelDB.
// The mutex serialises the read-modify-write cycle on the history document.
type LedgerRepository struct {
	db *leveldb.DB
	mu sync.Mutex
}

// NewLedgerRepository creates or opens the ledger database at path.
func NewLedgerRepository(path string) (*LedgerRepository, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	return &LedgerRepository{db: db}, nil
}

// NewLedgerRepositoryWithStorage opens the ledger over an explicit storage
// backend. Tests use storage.NewMemStorage().
func NewLedgerRepositoryWithStorage(st storage.Storage) (*LedgerRepository, error) {
	db, err := leveldb.Open(st, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	return &LedgerRepository{db: db}, nil
}

// Prepend inserts the entry at the head of the history. A duplicate invoice id
// is a fatal integrity violation; the history is left untouched in that case.
func (r *LedgerRepository) Prepend(ctx context.Context, entry domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.readAll()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.InvoiceID == entry.InvoiceID {
			return fmt.Errorf("%w: duplicate invoice id %s", apperrors.ErrLedgerIntegrity, entry.InvoiceID)
		}
	}

	entries = append([]domain.LedgerEntry{entry}, entries...)
	return r.writeAll(entries)
}

// FindAll returns every entry, most recent first.
func (r *LedgerRepository) FindAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

// DeleteByInvoiceID removes the matching entry. Removing an absent id is a no-op.
func (r *LedgerRepository) DeleteByInvoiceID(ctx context.Context, invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.readAll()
	if err != nil {
		return err
	}

	kept := entries[:0]
	removed := false
	for _, e := range entries {
		if e.InvoiceID == invoiceID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return nil
	}
	return r.writeAll(kept)
}

// DeleteAll empties the ledger.
func (r *LedgerRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Delete([]byte(historyKey), nil); err != nil {
		return fmt.Errorf("failed to clear ledger history: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (r *LedgerRepository) Close() error {
	return r.db.Close()
}

func (r *LedgerRepository) readAll() ([]domain.LedgerEntry, error) {
	raw, err := r.db.Get([]byte(historyKey), nil)
	if err == leveldb.ErrNotFound {
		return []domain.LedgerEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger history: %w", err)
	}

	var entries []domain.LedgerEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("corrupt ledger history: %w", err)
	}
	return entries, nil
}

func (r *LedgerRepository) writeAll(entries []domain.LedgerEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode ledger history: %w", err)
	}
	if err := r.db.Put([]byte(historyKey), raw, nil); err != nil {
		return fmt.Errorf("failed to write ledger history: %w", err)
	}
	return nil
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)
