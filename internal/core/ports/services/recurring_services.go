package services

import (
	"context"
	"iter"
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
)

// TemplateSvc covers the settings CRUD path for recurring templates.
type TemplateSvc interface {
	CreateTemplate(ctx context.Context, userID string, req dto.CreateTemplateRequest) (*domain.RecurringTemplate, error)
	GetTemplateByID(ctx context.Context, userID, templateID string) (*domain.RecurringTemplate, error)
	ListTemplates(ctx context.Context, userID string) ([]domain.RecurringTemplate, error)
	UpdateTemplate(ctx context.Context, userID, templateID string, req dto.UpdateTemplateRequest) (*domain.RecurringTemplate, error)
	DeleteTemplate(ctx context.Context, userID, templateID string) error
}

// RecorderSvc is the engine surface consumed by the UI layer: recording,
// batch recording, undo, and the period-due listing.
type RecorderSvc interface {
	// RecordOccurrence turns the template's next unrecorded occurrence into a
	// ledger entry, advancing the schedule atomically. Returns
	// apperrors.ErrDuplicate when that occurrence is already recorded.
	RecordOccurrence(ctx context.Context, userID, templateID string) (*domain.RecordedOccurrence, error)

	// RecordBatch applies RecordOccurrence to each id sequentially,
	// continuing past per-item failures. Already-succeeded items are not
	// rolled back.
	RecordBatch(ctx context.Context, userID string, templateIDs []string) (*dto.BatchRecordResult, error)

	// UndoOccurrence reverses the period's recording for the template using
	// its compensating action. Returns apperrors.ErrNoOpenAction when nothing
	// is undoable in the period and apperrors.ErrAlreadyUndone when the
	// action was already applied.
	UndoOccurrence(ctx context.Context, userID, templateID string, periodStart, periodEnd time.Time) (*domain.CompensatingAction, error)

	// OccurrencesDue yields the user's templates whose next occurrence falls
	// within [periodStart, periodEnd] inclusive, in creation order.
	OccurrencesDue(ctx context.Context, userID string, periodStart, periodEnd time.Time) (iter.Seq[domain.RecurringTemplate], error)

	// ListUndoable lists the user's undoable recordings for the period.
	ListUndoable(ctx context.Context, userID string, periodStart, periodEnd time.Time) ([]domain.CompensatingAction, error)

	// SetTemplateChecked flips the UI reminder flag on a template.
	SetTemplateChecked(ctx context.Context, userID, templateID string, checked bool) error

	// AlreadyRecorded reports whether the (template, occurrenceDate) pair has
	// a ledger entry. Advisory, for rendering; the authoritative duplicate
	// check runs inside the recorder's transaction.
	AlreadyRecorded(ctx context.Context, userID, templateID string, occurrenceDate time.Time) (bool, error)
}

// RecurringSvcFacade combines the template CRUD and recorder surfaces.
type RecurringSvcFacade interface {
	TemplateSvc
	RecorderSvc
}
