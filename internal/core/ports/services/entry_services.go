package services

import (
	"context"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
)

// EntrySvcFacade covers manual ledger entry CRUD and the month-view listing.
type EntrySvcFacade interface {
	CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.LedgerEntry, error)
	GetEntryByID(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
}
