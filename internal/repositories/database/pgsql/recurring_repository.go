package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
	"github.com/kakeibo-app/kakeibo_backend/internal/models"
	"github.com/kakeibo-app/kakeibo_backend/internal/utils/mapping"
	"github.com/kakeibo-app/kakeibo_backend/internal/utils/schedule"
)

type PgxRecurringRepository struct {
	BaseRepository
}

// newPgxRecurringRepository creates a new repository for recurring templates,
// occurrence recording and the compensating-action log.
func newPgxRecurringRepository(pool *pgxpool.Pool) portsrepo.RecurringRepositoryFacade {
	return &PgxRecurringRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRecurringRepository implements portsrepo.RecurringRepositoryFacade
var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

const templateColumns = `
	template_id, user_id, name, amount, kind, category_id, payment_method_id,
	frequency_unit, interval_count, next_occurrence_date, linked_account_id,
	group_id, is_checked, created_at, created_by, last_updated_at, last_updated_by
`

func scanTemplate(row pgx.Row) (*models.RecurringTemplate, error) {
	var m models.RecurringTemplate
	err := row.Scan(
		&m.TemplateID,
		&m.UserID,
		&m.Name,
		&m.Amount,
		&m.Kind,
		&m.CategoryID,
		&m.PaymentMethodID,
		&m.FrequencyUnit,
		&m.IntervalCount,
		&m.NextOccurrenceDate,
		&m.LinkedAccountID,
		&m.GroupID,
		&m.IsChecked,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveTemplate inserts a new recurring template.
func (r *PgxRecurringRepository) SaveTemplate(ctx context.Context, template domain.RecurringTemplate) error {
	m := mapping.ToModelTemplate(template)
	query := `
		INSERT INTO recurring_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TemplateID,
		m.UserID,
		m.Name,
		m.Amount,
		m.Kind,
		m.CategoryID,
		m.PaymentMethodID,
		m.FrequencyUnit,
		m.IntervalCount,
		m.NextOccurrenceDate,
		m.LinkedAccountID,
		m.GroupID,
		m.IsChecked,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert recurring template", err)
	}
	return nil
}

// FindTemplateByID retrieves a template by its ID.
func (r *PgxRecurringRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.RecurringTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM recurring_templates WHERE template_id = $1;`
	m, err := scanTemplate(r.Pool.QueryRow(ctx, query, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("recurring template not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query recurring template", err)
	}
	d := mapping.ToDomainTemplate(*m)
	return &d, nil
}

// ListTemplatesByUser retrieves all templates owned by a user, oldest first.
func (r *PgxRecurringRepository) ListTemplatesByUser(ctx context.Context, userID string) ([]domain.RecurringTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM recurring_templates WHERE user_id = $1 ORDER BY created_at ASC, template_id ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list recurring templates", err)
	}
	defer rows.Close()

	var ms []models.RecurringTemplate
	for rows.Next() {
		m, err := scanTemplate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recurring template", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating recurring templates", err)
	}
	return mapping.ToDomainTemplateSlice(ms), nil
}

// UpdateTemplate updates the editable template fields. next_occurrence_date is
// deliberately absent from the SET list; only RecordOccurrence and
// RevertOccurrence move the schedule.
func (r *PgxRecurringRepository) UpdateTemplate(ctx context.Context, template domain.RecurringTemplate) error {
	m := mapping.ToModelTemplate(template)
	query := `
		UPDATE recurring_templates SET
			name = $2,
			amount = $3,
			kind = $4,
			category_id = $5,
			payment_method_id = $6,
			frequency_unit = $7,
			interval_count = $8,
			linked_account_id = $9,
			group_id = $10,
			last_updated_at = $11,
			last_updated_by = $12
		WHERE template_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TemplateID,
		m.Name,
		m.Amount,
		m.Kind,
		m.CategoryID,
		m.PaymentMethodID,
		m.FrequencyUnit,
		m.IntervalCount,
		m.LinkedAccountID,
		m.GroupID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update recurring template", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recurring template not found")
	}
	return nil
}

// DeleteTemplate removes a template. Ledger entries and compensating actions
// survive the delete; their source_template_id keeps pointing at the old ID.
func (r *PgxRecurringRepository) DeleteTemplate(ctx context.Context, templateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM recurring_templates WHERE template_id = $1;`, templateID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete recurring template", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recurring template not found")
	}
	return nil
}

// SetTemplateChecked flips the UI reminder flag.
func (r *PgxRecurringRepository) SetTemplateChecked(ctx context.Context, templateID string, checked bool, userID string, now time.Time) error {
	query := `
		UPDATE recurring_templates
		SET is_checked = $2, last_updated_at = $3, last_updated_by = $4
		WHERE template_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, templateID, checked, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update checked flag", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recurring template not found")
	}
	return nil
}

// RecordOccurrence performs the full recording sequence inside one database
// transaction. The template passed in is only trusted for its settings
// (amount, category, frequency); the schedule date is re-read under a row
// lock so concurrent recorders serialize instead of double-inserting.
func (r *PgxRecurringRepository) RecordOccurrence(ctx context.Context, template domain.RecurringTemplate, entryID, actionID string, now time.Time) (*domain.RecordedOccurrence, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// 1. Lock the template row and re-read the authoritative schedule date.
	var occurrenceDate time.Time
	err = tx.QueryRow(ctx,
		`SELECT next_occurrence_date FROM recurring_templates WHERE template_id = $1 FOR UPDATE;`,
		template.TemplateID,
	).Scan(&occurrenceDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("recurring template not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock recurring template", err)
	}

	// 2. Duplicate guard: at most one entry per (template, occurrence date).
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE source_template_id = $1 AND occurrence_date = $2);`,
		template.TemplateID, occurrenceDate,
	).Scan(&exists)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to check for existing occurrence entry", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicate
	}

	// 3. Insert the ledger entry, dated at the occurrence itself rather than
	// the wall clock so late recordings land in the right month.
	entry := domain.LedgerEntry{
		EntryID:          entryID,
		UserID:           template.UserID,
		Kind:             template.Kind,
		Amount:           template.Amount,
		CategoryID:       template.CategoryID,
		PaymentMethodID:  template.PaymentMethodID,
		EntryDate:        occurrenceDate,
		Memo:             template.Name,
		SourceTemplateID: &template.TemplateID,
		OccurrenceDate:   &occurrenceDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     template.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: template.UserID,
		},
	}
	me := mapping.ToModelEntry(entry)
	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (
			entry_id, user_id, kind, amount, category_id, payment_method_id,
			entry_date, memo, source_template_id, occurrence_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		me.EntryID, me.UserID, me.Kind, me.Amount, me.CategoryID, me.PaymentMethodID,
		me.EntryDate, me.Memo, me.SourceTemplateID, me.OccurrenceDate,
		me.CreatedAt, me.CreatedBy, me.LastUpdatedAt, me.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger entry "+entryID, err)
	}

	// 4. Advance the schedule.
	newNext := schedule.Advance(occurrenceDate, template.FrequencyUnit, template.IntervalCount)
	_, err = tx.Exec(ctx, `
		UPDATE recurring_templates
		SET next_occurrence_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE template_id = $1;
	`, template.TemplateID, newNext, now, template.UserID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to advance template schedule", err)
	}

	// 5. Apply the linked-account balance delta for income templates. A
	// linked account that was deleted since the template was configured is
	// skipped rather than failing the whole recording.
	var appliedAccountID *string
	if template.Kind == domain.Income && template.LinkedAccountID != nil {
		tag, err := tx.Exec(ctx, `
			UPDATE accounts
			SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1;
		`, *template.LinkedAccountID, template.Amount, now, template.UserID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to apply linked account balance", err)
		}
		if tag.RowsAffected() > 0 {
			appliedAccountID = template.LinkedAccountID
		}
	}

	// 6. Write the compensating action so this recording can be reversed.
	action := domain.CompensatingAction{
		ActionID:                   actionID,
		UserID:                     template.UserID,
		TemplateID:                 template.TemplateID,
		EntryID:                    entryID,
		PreviousNextOccurrenceDate: occurrenceDate,
		Amount:                     template.Amount,
		TemplateName:               template.Name,
		AppliedAccountID:           appliedAccountID,
		Undone:                     false,
		CreatedAt:                  now,
	}
	ma := mapping.ToModelCompensatingAction(action)
	_, err = tx.Exec(ctx, `
		INSERT INTO compensating_actions (
			action_id, user_id, template_id, entry_id,
			previous_next_occurrence_date, amount, template_name,
			applied_account_id, undone, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		ma.ActionID, ma.UserID, ma.TemplateID, ma.EntryID,
		ma.PreviousNextOccurrenceDate, ma.Amount, ma.TemplateName,
		ma.AppliedAccountID, ma.Undone, ma.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert compensating action "+actionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.RecordedOccurrence{
		Entry:                  entry,
		Action:                 action,
		NextOccurrenceDate:     newNext,
		PreviousOccurrenceDate: occurrenceDate,
	}, nil
}

// RevertOccurrence reverses one recorded occurrence inside a single database
// transaction. The conditional update on the undone flag doubles as the
// idempotence lock: a second undo of the same action affects zero rows and
// returns apperrors.ErrAlreadyUndone without touching anything else.
func (r *PgxRecurringRepository) RevertOccurrence(ctx context.Context, action domain.CompensatingAction, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Claim the action. Zero rows means it was already undone.
	tag, err := tx.Exec(ctx,
		`UPDATE compensating_actions SET undone = TRUE WHERE action_id = $1 AND undone = FALSE;`,
		action.ActionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark compensating action undone", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyUndone
	}

	// 2. Delete the generated ledger entry.
	tag, err = tx.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, action.EntryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete ledger entry "+action.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(500, "ledger entry "+action.EntryID+" missing during undo", apperrors.ErrNotFound)
	}

	// 3. Rewind the template schedule to the date it had before recording.
	// The template may have been deleted since; the undo still removes the
	// entry and reverses any balance delta in that case.
	_, err = tx.Exec(ctx, `
		UPDATE recurring_templates
		SET next_occurrence_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE template_id = $1;
	`, action.TemplateID, action.PreviousNextOccurrenceDate, now, action.UserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to rewind template schedule", err)
	}

	// 4. Subtract the balance delta, but only if recording applied one.
	if action.AppliedAccountID != nil {
		_, err = tx.Exec(ctx, `
			UPDATE accounts
			SET balance = balance - $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1;
		`, *action.AppliedAccountID, action.Amount, now, action.UserID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to reverse linked account balance", err)
		}
	}

	return r.Commit(ctx, tx)
}

// AlreadyRecorded reports whether an entry exists for the exact occurrence.
func (r *PgxRecurringRepository) AlreadyRecorded(ctx context.Context, templateID string, occurrenceDate time.Time) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE source_template_id = $1 AND occurrence_date = $2);`,
		templateID, occurrenceDate,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check recorded occurrence", err)
	}
	return exists, nil
}

const actionColumns = `
	action_id, user_id, template_id, entry_id, previous_next_occurrence_date,
	amount, template_name, applied_account_id, undone, created_at
`

func scanAction(row pgx.Row) (*models.CompensatingAction, error) {
	var m models.CompensatingAction
	err := row.Scan(
		&m.ActionID,
		&m.UserID,
		&m.TemplateID,
		&m.EntryID,
		&m.PreviousNextOccurrenceDate,
		&m.Amount,
		&m.TemplateName,
		&m.AppliedAccountID,
		&m.Undone,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindOpenAction locates the single undoable action for a template whose
// previous occurrence date lies within the period.
func (r *PgxRecurringRepository) FindOpenAction(ctx context.Context, userID, templateID string, periodStart, periodEnd time.Time) (*domain.CompensatingAction, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM compensating_actions
		WHERE user_id = $1 AND template_id = $2 AND undone = FALSE
		  AND previous_next_occurrence_date >= $3 AND previous_next_occurrence_date <= $4
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanAction(r.Pool.QueryRow(ctx, query, userID, templateID, periodStart, periodEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoOpenAction
		}
		return nil, apperrors.NewAppError(500, "failed to query compensating action", err)
	}
	d := mapping.ToDomainCompensatingAction(*m)
	return &d, nil
}

// ListOpenActions retrieves all undoable actions for a user in a period.
func (r *PgxRecurringRepository) ListOpenActions(ctx context.Context, userID string, periodStart, periodEnd time.Time) ([]domain.CompensatingAction, error) {
	query := `
		SELECT ` + actionColumns + `
		FROM compensating_actions
		WHERE user_id = $1 AND undone = FALSE
		  AND previous_next_occurrence_date >= $2 AND previous_next_occurrence_date <= $3
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, periodStart, periodEnd)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list compensating actions", err)
	}
	defer rows.Close()

	var out []domain.CompensatingAction
	for rows.Next() {
		m, err := scanAction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan compensating action", err)
		}
		out = append(out, mapping.ToDomainCompensatingAction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating compensating actions", err)
	}
	return out, nil
}
