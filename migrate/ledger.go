package migrate

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fwojciec/kbmigrate"
	"github.com/fwojciec/kbmigrate/bloom"
)

// DefaultLedgerCapacity sizes the ledger filter when the number of folders
// is not known up front.
const DefaultLedgerCapacity = 10000

// Ledger answers whether a folder was already migrated successfully.
// A Bloom filter rejects unseen folders without touching the store;
// possible hits are confirmed against the latest stored result.
// It is safe for concurrent use.
type Ledger struct {
	results kbmigrate.ResultService

	mu   sync.Mutex
	seen *bloom.Filter
}

// LoadLedger builds a ledger from the successful results in results.
func LoadLedger(ctx context.Context, results kbmigrate.ResultService, capacity uint) (*Ledger, error) {
	if capacity == 0 {
		capacity = DefaultLedgerCapacity
	}
	status := kbmigrate.StatusSuccess
	found, err := results.FindResults(ctx, kbmigrate.ResultFilter{Status: &status})
	if err != nil {
		return nil, err
	}

	seen := bloom.NewFilter(max(capacity, uint(len(found))), 0.01)
	for _, r := range found {
		seen.Add(r.Folder)
	}
	return &Ledger{results: results, seen: seen}, nil
}

// Len returns the approximate number of folders recorded as migrated.
func (l *Ledger) Len() uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen.EstimatedCount()
}

// Migrated reports whether the latest result for folder is a success.
func (l *Ledger) Migrated(ctx context.Context, folder string) (bool, error) {
	l.mu.Lock()
	maybe := l.seen.Test(folder)
	l.mu.Unlock()
	if !maybe {
		return false, nil
	}

	key := filepath.Clean(folder)
	found, err := l.results.FindResults(ctx, kbmigrate.ResultFilter{Folder: &key, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(found) > 0 && found[0].Status == kbmigrate.StatusSuccess, nil
}

// Record notes a successful migration of folder.
func (l *Ledger) Record(folder string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen.Add(folder)
}
