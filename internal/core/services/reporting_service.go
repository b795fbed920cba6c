package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
	portssvc "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/services"
	"github.com/kakeibo-app/kakeibo_backend/internal/middleware"
	"github.com/kakeibo-app/kakeibo_backend/internal/utils/schedule"
)

// summaryCacheTTL bounds staleness of the dashboard summary. A recording or
// manual entry becomes visible in the summary within this window at worst.
const summaryCacheTTL = 2 * time.Minute

// reportingService computes period summaries, cached in Redis per
// (user, period). A nil redis client disables caching (tests, local runs
// without Redis).
type reportingService struct {
	reportingRepo portsrepo.ReportingReader
	redisClient   *redis.Client
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingReader, redisClient *redis.Client) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		redisClient:   redisClient,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func summaryCacheKey(userID string, periodStart, periodEnd time.Time) string {
	return fmt.Sprintf("summary:%s:%s:%s", userID,
		periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"))
}

// SummarizePeriod aggregates the user's entries for the period, serving from
// cache when possible. Cache failures degrade to a direct query, never to an
// error.
func (s *reportingService) SummarizePeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time) (*domain.PeriodSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	periodStart = schedule.Normalize(periodStart)
	periodEnd = schedule.Normalize(periodEnd)
	key := summaryCacheKey(userID, periodStart, periodEnd)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, key).Result()
		if err == nil {
			var summary domain.PeriodSummary
			if jsonErr := json.Unmarshal([]byte(cached), &summary); jsonErr == nil {
				logger.Debug("Period summary served from cache", slog.String("key", key))
				return &summary, nil
			}
			// Corrupt cache entry; fall through to recompute.
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("Summary cache read failed", slog.String("error", err.Error()))
		}
	}

	summary, err := s.reportingRepo.SummarizePeriod(ctx, userID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize period: %w", err)
	}

	if s.redisClient != nil {
		if payload, jsonErr := json.Marshal(summary); jsonErr == nil {
			if err := s.redisClient.Set(ctx, key, payload, summaryCacheTTL).Err(); err != nil {
				logger.Warn("Summary cache write failed", slog.String("error", err.Error()))
			}
		}
	}

	return summary, nil
}
