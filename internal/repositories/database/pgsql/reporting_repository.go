package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for ledger aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingReader {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingReader = (*PgxReportingRepository)(nil)

// SummarizePeriod aggregates a user's entries dated inside the period into
// per-category totals plus overall expense and income totals. Entries whose
// category has since been deleted fall out of the per-category rows but still
// count toward the overall totals.
func (r *PgxReportingRepository) SummarizePeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time) (*domain.PeriodSummary, error) {
	summary := &domain.PeriodSummary{
		TotalExpense: decimal.Zero,
		TotalIncome:  decimal.Zero,
	}

	totalsQuery := `
		SELECT kind, COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE user_id = $1 AND entry_date >= $2 AND entry_date <= $3
		GROUP BY kind;
	`
	rows, err := r.Pool.Query(ctx, totalsQuery, userID, periodStart, periodEnd)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query period totals", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var total decimal.Decimal
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period total", err)
		}
		switch domain.EntryKind(kind) {
		case domain.Expense:
			summary.TotalExpense = total
		case domain.Income:
			summary.TotalIncome = total
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period totals", err)
	}

	categoryQuery := `
		SELECT c.category_id, c.name, c.kind, COALESCE(SUM(e.amount), 0)
		FROM ledger_entries e
		JOIN categories c ON c.category_id = e.category_id
		WHERE e.user_id = $1 AND e.entry_date >= $2 AND e.entry_date <= $3
		GROUP BY c.category_id, c.name, c.kind, c.sort_order
		ORDER BY c.sort_order ASC, c.name ASC;
	`
	catRows, err := r.Pool.Query(ctx, categoryQuery, userID, periodStart, periodEnd)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query category totals", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var ct domain.CategoryTotal
		var kind string
		if err := catRows.Scan(&ct.CategoryID, &ct.CategoryName, &kind, &ct.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category total", err)
		}
		ct.Kind = domain.EntryKind(kind)
		summary.ByCategory = append(summary.ByCategory, ct)
	}
	if err := catRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category totals", err)
	}

	return summary, nil
}
