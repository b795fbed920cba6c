package repositories

import (
	"context"
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
)

// EntryReader defines read operations for ledger entries
type EntryReader interface {
	// FindEntryByID retrieves a specific ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByPeriod retrieves a paginated list of a user's entries with
	// entry dates inside [periodStart, periodEnd], newest first, using
	// token-based pagination. Returns the entries, a token for the next page,
	// and an error.
	ListEntriesByPeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// EntryWriter defines write operations for manually created ledger entries.
// Entries produced by the recurring engine are inserted and deleted only
// through the OccurrenceRecorder's atomic operations.
type EntryWriter interface {
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all ledger-entry repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
