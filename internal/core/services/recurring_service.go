package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
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

var (
	ErrInvalidFrequencyUnit = errors.New("frequency unit must be MONTHS or YEARS")
	ErrInvalidInterval      = errors.New("interval must be at least 1")
	ErrInvalidKind          = errors.New("kind must be EXPENSE or INCOME")
	ErrCategoryKindMismatch = errors.New("category kind does not match template kind")
	ErrLinkedAccountExpense = errors.New("expense templates cannot have a linked account")
)

// recurringService implements the recurring-transaction engine: template
// CRUD, the occurrence recorder, the undo processor, and the batch
// orchestrator. Every operation takes the owning user ID explicitly.
type recurringService struct {
	recurringRepo portsrepo.RecurringRepositoryFacade
	categoryRepo  portsrepo.CategoryReader
}

// NewRecurringService creates a new recurring-transaction engine service.
func NewRecurringService(recurringRepo portsrepo.RecurringRepositoryFacade, categoryRepo portsrepo.CategoryReader) portssvc.RecurringSvcFacade {
	return &recurringService{
		recurringRepo: recurringRepo,
		categoryRepo:  categoryRepo,
	}
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// findOwnedTemplate loads a template and verifies the requesting user owns
// it. A foreign template is reported as not found to obscure its existence.
func (s *recurringService) findOwnedTemplate(ctx context.Context, userID, templateID string) (*domain.RecurringTemplate, error) {
	template, err := s.recurringRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return template, nil
}

// CreateTemplate validates and persists a new recurring template.
// Implements portssvc.TemplateSvc
func (s *recurringService) CreateTemplate(ctx context.Context, userID string, req dto.CreateTemplateRequest) (*domain.RecurringTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind := domain.EntryKind(req.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, req.Kind)
	}
	unit := domain.FrequencyUnit(req.FrequencyUnit)
	if !unit.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFrequencyUnit, req.FrequencyUnit)
	}
	// Binding enforces min=1 as well; misconfigured intervals must never
	// reach the schedule calculator.
	if req.IntervalCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, req.IntervalCount)
	}
	if kind == domain.Expense && req.LinkedAccountID != nil {
		return nil, ErrLinkedAccountExpense
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
	template := domain.RecurringTemplate{
		TemplateID:         uuid.NewString(),
		UserID:             userID,
		Name:               req.Name,
		Amount:             req.Amount,
		Kind:               kind,
		CategoryID:         req.CategoryID,
		PaymentMethodID:    req.PaymentMethodID,
		FrequencyUnit:      unit,
		IntervalCount:      req.IntervalCount,
		NextOccurrenceDate: schedule.Normalize(req.NextOccurrenceDate),
		LinkedAccountID:    req.LinkedAccountID,
		GroupID:            req.GroupID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.recurringRepo.SaveTemplate(ctx, template); err != nil {
		logger.Error("Failed to save recurring template", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	logger.Info("Recurring template created", slog.String("template_id", template.TemplateID))
	return &template, nil
}

// GetTemplateByID retrieves one of the user's templates.
// Implements portssvc.TemplateSvc
func (s *recurringService) GetTemplateByID(ctx context.Context, userID, templateID string) (*domain.RecurringTemplate, error) {
	return s.findOwnedTemplate(ctx, userID, templateID)
}

// ListTemplates retrieves all of the user's templates in creation order.
// Implements portssvc.TemplateSvc
func (s *recurringService) ListTemplates(ctx context.Context, userID string) ([]domain.RecurringTemplate, error) {
	templates, err := s.recurringRepo.ListTemplatesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// UpdateTemplate applies the editable fields of a template. The schedule
// position is deliberately not editable here.
// Implements portssvc.TemplateSvc
func (s *recurringService) UpdateTemplate(ctx context.Context, userID, templateID string, req dto.UpdateTemplateRequest) (*domain.RecurringTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	template, err := s.findOwnedTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		template.Name = *req.Name
		updated = true
	}
	if req.Amount != nil {
		template.Amount = *req.Amount
		updated = true
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %s: %w", *req.CategoryID, err)
		}
		if category.UserID != userID {
			return nil, apperrors.ErrNotFound
		}
		if category.Kind != template.Kind {
			return nil, fmt.Errorf("%w: category is %s", ErrCategoryKindMismatch, category.Kind)
		}
		template.CategoryID = *req.CategoryID
		updated = true
	}
	if req.PaymentMethodID != nil {
		template.PaymentMethodID = req.PaymentMethodID
		updated = true
	}
	if req.LinkedAccountID != nil {
		if template.Kind == domain.Expense {
			return nil, ErrLinkedAccountExpense
		}
		template.LinkedAccountID = req.LinkedAccountID
		updated = true
	}
	if req.GroupID != nil {
		template.GroupID = req.GroupID
		updated = true
	}
	if req.IsChecked != nil {
		template.IsChecked = *req.IsChecked
		updated = true
	}

	if !updated {
		return template, nil
	}

	now := time.Now().UTC()
	template.LastUpdatedAt = now
	template.LastUpdatedBy = userID

	if err := s.recurringRepo.UpdateTemplate(ctx, *template); err != nil {
		logger.Error("Failed to update recurring template", slog.String("error", err.Error()), slog.String("template_id", templateID))
		return nil, fmt.Errorf("failed to update template: %w", err)
	}
	return template, nil
}

// DeleteTemplate removes one of the user's templates. The template's past
// ledger entries and compensating actions remain; only the standing
// instruction is deleted.
// Implements portssvc.TemplateSvc
func (s *recurringService) DeleteTemplate(ctx context.Context, userID, templateID string) error {
	if _, err := s.findOwnedTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	if err := s.recurringRepo.DeleteTemplate(ctx, templateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// RecordOccurrence turns the template's next unrecorded occurrence into a
// ledger entry. The repository performs every step inside one transaction:
// re-read of the schedule date under a row lock, duplicate guard, entry
// insert, schedule advance, linked-account credit, compensating action. A
// concurrent double-invocation therefore resolves to one winner and one
// ErrDuplicate.
// Implements portssvc.RecorderSvc
func (s *recurringService) RecordOccurrence(ctx context.Context, userID, templateID string) (*domain.RecordedOccurrence, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	template, err := s.findOwnedTemplate(ctx, userID, templateID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recorded, err := s.recurringRepo.RecordOccurrence(ctx, *template, uuid.NewString(), uuid.NewString(), now)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Occurrence already recorded", slog.String("template_id", templateID))
			return nil, err
		}
		logger.Error("Failed to record occurrence", slog.String("error", err.Error()), slog.String("template_id", templateID))
		return nil, fmt.Errorf("failed to record occurrence for template %s: %w", templateID, err)
	}

	logger.Info("Occurrence recorded",
		slog.String("template_id", templateID),
		slog.String("entry_id", recorded.Entry.EntryID),
		slog.Time("occurrence_date", recorded.PreviousOccurrenceDate),
		slog.Time("next_occurrence_date", recorded.NextOccurrenceDate),
	)
	return recorded, nil
}

// RecordBatch applies RecordOccurrence to each template id strictly
// sequentially, so a failure on one template cannot be misattributed to
// contention with another. Per-item failures are collected and processing
// continues; already-succeeded items are not rolled back.
// Implements portssvc.RecorderSvc
func (s *recurringService) RecordBatch(ctx context.Context, userID string, templateIDs []string) (*dto.BatchRecordResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result := &dto.BatchRecordResult{
		Succeeded: make([]string, 0, len(templateIDs)),
		Failed:    make([]dto.BatchFailure, 0),
	}

	for _, templateID := range templateIDs {
		if _, err := s.RecordOccurrence(ctx, userID, templateID); err != nil {
			result.Failed = append(result.Failed, dto.BatchFailure{
				TemplateID: templateID,
				Reason:     batchFailureReason(err),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, templateID)
	}

	logger.Info("Batch recording finished",
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// batchFailureReason maps a per-item error to the summary string shown to the
// user.
func batchFailureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		return "already recorded"
	case errors.Is(err, apperrors.ErrNotFound):
		return "template not found"
	default:
		return "storage failure"
	}
}

// UndoOccurrence reverses the period's recording for a template using its
// compensating action. The repository applies the reversal atomically:
// delete the entry, restore the previous schedule date, subtract the balance
// delta if one was applied, and mark the action undone.
// Implements portssvc.RecorderSvc
func (s *recurringService) UndoOccurrence(ctx context.Context, userID, templateID string, periodStart, periodEnd time.Time) (*domain.CompensatingAction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	action, err := s.recurringRepo.FindOpenAction(ctx, userID, templateID, schedule.Normalize(periodStart), schedule.Normalize(periodEnd))
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenAction) {
			logger.Info("No undoable recording in period", slog.String("template_id", templateID))
			return nil, err
		}
		logger.Error("Failed to look up compensating action", slog.String("error", err.Error()), slog.String("template_id", templateID))
		return nil, fmt.Errorf("failed to find compensating action for template %s: %w", templateID, err)
	}

	now := time.Now().UTC()
	if err := s.recurringRepo.RevertOccurrence(ctx, *action, now); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyUndone) {
			logger.Info("Recording already undone", slog.String("action_id", action.ActionID))
			return nil, err
		}
		logger.Error("Failed to revert occurrence", slog.String("error", err.Error()), slog.String("action_id", action.ActionID))
		return nil, fmt.Errorf("failed to undo occurrence for template %s: %w", templateID, err)
	}

	action.Undone = true
	logger.Info("Occurrence undone",
		slog.String("template_id", templateID),
		slog.String("entry_id", action.EntryID),
		slog.Time("restored_next_occurrence_date", action.PreviousNextOccurrenceDate),
	)
	return action, nil
}

// OccurrencesDue yields the user's templates whose next occurrence falls
// within the period, preserving creation order. The sequence is lazy and
// restartable.
// Implements portssvc.RecorderSvc
func (s *recurringService) OccurrencesDue(ctx context.Context, userID string, periodStart, periodEnd time.Time) (iter.Seq[domain.RecurringTemplate], error) {
	templates, err := s.recurringRepo.ListTemplatesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return schedule.OccurrencesDue(templates, periodStart, periodEnd), nil
}

// ListUndoable lists the user's undoable recordings in the period.
// Implements portssvc.RecorderSvc
func (s *recurringService) ListUndoable(ctx context.Context, userID string, periodStart, periodEnd time.Time) ([]domain.CompensatingAction, error) {
	actions, err := s.recurringRepo.ListOpenActions(ctx, userID, schedule.Normalize(periodStart), schedule.Normalize(periodEnd))
	if err != nil {
		return nil, fmt.Errorf("failed to list compensating actions: %w", err)
	}
	return actions, nil
}

// SetTemplateChecked flips the UI reminder flag on a template. The flag is
// presentation state, not a workflow gate; the recorder ignores it.
// Implements portssvc.RecorderSvc
func (s *recurringService) SetTemplateChecked(ctx context.Context, userID, templateID string, checked bool) error {
	if _, err := s.findOwnedTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	if err := s.recurringRepo.SetTemplateChecked(ctx, templateID, checked, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set checked flag: %w", err)
	}
	return nil
}

// AlreadyRecorded reports whether an entry exists for the template and date.
// This is display state only; relying on it as a pre-check before recording
// would race with a concurrent recording, which is why the recorder runs the
// same check again inside its transaction.
// Implements portssvc.RecorderSvc
func (s *recurringService) AlreadyRecorded(ctx context.Context, userID, templateID string, occurrenceDate time.Time) (bool, error) {
	if _, err := s.findOwnedTemplate(ctx, userID, templateID); err != nil {
		return false, err
	}
	recorded, err := s.recurringRepo.AlreadyRecorded(ctx, templateID, schedule.Normalize(occurrenceDate))
	if err != nil {
		return false, fmt.Errorf("failed to check recorded state: %w", err)
	}
	return recorded, nil
}
