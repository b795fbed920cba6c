package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
	"github.com/kakeibo-app/kakeibo_backend/internal/models"
	"github.com/kakeibo-app/kakeibo_backend/internal/utils/mapping"
	"github.com/kakeibo-app/kakeibo_backend/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for ledger entries.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `
	entry_id, user_id, kind, amount, category_id, payment_method_id,
	entry_date, memo, source_template_id, occurrence_date,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.Kind,
		&m.Amount,
		&m.CategoryID,
		&m.PaymentMethodID,
		&m.EntryDate,
		&m.Memo,
		&m.SourceTemplateID,
		&m.OccurrenceDate,
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

// SaveEntry inserts a manually created ledger entry.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.UserID, m.Kind, m.Amount, m.CategoryID, m.PaymentMethodID,
		m.EntryDate, m.Memo, m.SourceTemplateID, m.OccurrenceDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry", err)
	}
	return nil
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("ledger entry not found")
		}
		return nil, apperrors.NewAppError(500, "failed to query ledger entry", err)
	}
	d := mapping.ToDomainEntry(*m)
	return &d, nil
}

// ListEntriesByPeriod retrieves a page of a user's entries dated inside the
// period, newest first. The token pins the page boundary to (entry_date,
// created_at) so inserts between requests never shift results.
func (r *PgxEntryRepository) ListEntriesByPeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date <= $3
	`
	args := []interface{}{userID, periodStart, periodEnd}

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (entry_date, created_at) < ($4, $5)`
		args = append(args, tokenDate, tokenCreatedAt)
	}

	// Fetch one extra row to know whether another page exists.
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list ledger entries", err)
	}
	defer rows.Close()

	var ms []models.LedgerEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entries", err)
	}

	var newToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newToken = &t
	}
	return mapping.ToDomainEntrySlice(ms), newToken, nil
}

// UpdateEntry updates an entry's editable fields.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		UPDATE ledger_entries SET
			kind = $2,
			amount = $3,
			category_id = $4,
			payment_method_id = $5,
			entry_date = $6,
			memo = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.Kind, m.Amount, m.CategoryID, m.PaymentMethodID,
		m.EntryDate, m.Memo, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update ledger entry", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ledger entry not found")
	}
	return nil
}

// DeleteEntry removes a manually created entry.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete ledger entry", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("ledger entry not found")
	}
	return nil
}
