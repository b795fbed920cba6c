package repositories

import (
	"context"
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
)

// ReportingReader defines aggregate queries over the ledger
type ReportingReader interface {
	// SummarizePeriod computes per-category totals and overall expense/income
	// totals for a user's entries dated inside [periodStart, periodEnd].
	SummarizePeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time) (*domain.PeriodSummary, error)
}
