package repositories

import (
	"context"
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
)

// TemplateReader defines read operations for recurring templates
type TemplateReader interface {
	// FindTemplateByID retrieves a specific template by its unique identifier.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.RecurringTemplate, error)

	// ListTemplatesByUser retrieves all templates owned by a user, in creation order.
	ListTemplatesByUser(ctx context.Context, userID string) ([]domain.RecurringTemplate, error)
}

// TemplateWriter defines write operations for recurring templates.
// The schedule fields (NextOccurrenceDate) are additionally mutated by the
// occurrence recorder below; these methods cover the settings CRUD path.
type TemplateWriter interface {
	SaveTemplate(ctx context.Context, template domain.RecurringTemplate) error

	// UpdateTemplate updates the editable template fields. It never touches
	// next_occurrence_date; only the recorder and undo move the schedule.
	UpdateTemplate(ctx context.Context, template domain.RecurringTemplate) error

	DeleteTemplate(ctx context.Context, templateID string) error

	// SetTemplateChecked flips the UI reminder flag.
	SetTemplateChecked(ctx context.Context, templateID string, checked bool, userID string, now time.Time) error
}

// OccurrenceRecorder defines the engine's two atomic state transitions. Both
// execute every step inside one database transaction; partial application is
// never observable.
type OccurrenceRecorder interface {
	// RecordOccurrence re-reads the template's next occurrence date under a
	// row lock, checks the duplicate guard, inserts the ledger entry,
	// advances the schedule, applies the linked-account balance delta for
	// income templates (skipping silently when the account row is gone), and
	// writes the compensating action. Returns apperrors.ErrDuplicate when an
	// entry for (templateID, occurrenceDate) already exists.
	RecordOccurrence(ctx context.Context, template domain.RecurringTemplate, entryID, actionID string, now time.Time) (*domain.RecordedOccurrence, error)

	// RevertOccurrence reverses a recorded occurrence: marks the action
	// undone (returning apperrors.ErrAlreadyUndone if it already was),
	// deletes the ledger entry, restores the template's previous next
	// occurrence date, and subtracts the balance delta if one was applied.
	RevertOccurrence(ctx context.Context, action domain.CompensatingAction, now time.Time) error

	// AlreadyRecorded reports whether a ledger entry exists for the exact
	// (templateID, occurrenceDate) pair. Advisory only: the authoritative
	// check runs inside RecordOccurrence's transaction.
	AlreadyRecorded(ctx context.Context, templateID string, occurrenceDate time.Time) (bool, error)
}

// CompensationReader defines read operations over the compensating-action log
type CompensationReader interface {
	// FindOpenAction locates the action for a template with undone = false
	// whose previous next occurrence date lies within [periodStart, periodEnd].
	// Returns apperrors.ErrNoOpenAction when none exists.
	FindOpenAction(ctx context.Context, userID, templateID string, periodStart, periodEnd time.Time) (*domain.CompensatingAction, error)

	// ListOpenActions retrieves all undoable actions for a user in a period,
	// newest first. Used by the UI to render undo buttons.
	ListOpenActions(ctx context.Context, userID string, periodStart, periodEnd time.Time) ([]domain.CompensatingAction, error)
}

// RecurringRepositoryFacade combines all recurring-engine repository interfaces
type RecurringRepositoryFacade interface {
	TemplateReader
	TemplateWriter
	OccurrenceRecorder
	CompensationReader
}
