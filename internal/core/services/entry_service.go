package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
	portssvc "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/services"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
	"github.com/kakeibo-app/kakeibo_backend/internal/middleware"
	"github.com/kakeibo-app/kakeibo_backend/internal/utils/schedule"
)

// entryService provides manual ledger entry operations. Entries produced by
// the recurring engine are created and deleted only through the engine's
// atomic operations; this service refuses to edit them.
type entryService struct {
	entryRepo    portsrepo.EntryRepositoryFacade
	categoryRepo portsrepo.CategoryReader
}

// NewEntryService creates a new ledger entry service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, categoryRepo portsrepo.CategoryReader) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) findOwnedEntry(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// CreateEntry validates and persists a manual ledger entry.
func (s *entryService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind := domain.EntryKind(req.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, req.Kind)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category %s: %w", req.CategoryID, err)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if category.Kind != kind {
		return nil, fmt.Errorf("%w: category is %s", ErrCategoryKindMismatch, category.Kind)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		UserID:          userID,
		Kind:            kind,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		PaymentMethodID: req.PaymentMethodID,
		EntryDate:       schedule.Normalize(req.EntryDate),
		Memo:            req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save ledger entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Ledger entry created", slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

// GetEntryByID retrieves one of the user's ledger entries.
func (s *entryService) GetEntryByID(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	return s.findOwnedEntry(ctx, userID, entryID)
}

// ListEntries retrieves a page of the user's entries within the period.
func (s *entryService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByPeriod(ctx, userID,
		schedule.Normalize(params.PeriodStart), schedule.Normalize(params.PeriodEnd), limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// UpdateEntry edits a manual entry. Entries that trace back to a recurring
// template are immutable through this path; reversing them is the undo
// processor's job.
func (s *entryService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.findOwnedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.SourceTemplateID != nil {
		return nil, fmt.Errorf("%w: recurring entries can only be reversed via undo", apperrors.ErrValidation)
	}

	updated := false
	if req.Amount != nil {
		entry.Amount = *req.Amount
		updated = true
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %s: %w", *req.CategoryID, err)
		}
		if category.UserID != userID || category.Kind != entry.Kind {
			return nil, apperrors.ErrNotFound
		}
		entry.CategoryID = *req.CategoryID
		updated = true
	}
	if req.PaymentMethodID != nil {
		entry.PaymentMethodID = req.PaymentMethodID
		updated = true
	}
	if req.EntryDate != nil {
		entry.EntryDate = schedule.Normalize(*req.EntryDate)
		updated = true
	}
	if req.Memo != nil {
		entry.Memo = *req.Memo
		updated = true
	}

	if !updated {
		return entry, nil
	}

	now := time.Now().UTC()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes a manual entry. Recurring-sourced entries are refused
// for the same reason as in UpdateEntry.
func (s *entryService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	entry, err := s.findOwnedEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if entry.SourceTemplateID != nil {
		return fmt.Errorf("%w: recurring entries can only be reversed via undo", apperrors.ErrValidation)
	}
	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
