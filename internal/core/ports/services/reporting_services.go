package services

import (
	"context"
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
)

// ReportingSvcFacade computes period summaries for the dashboard.
type ReportingSvcFacade interface {
	SummarizePeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time) (*domain.PeriodSummary, error)
}
