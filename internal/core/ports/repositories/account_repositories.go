package repositories

import (
	"context"
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for balance accounts
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for balance accounts. Balance
// mutations tied to a recording or its undo happen inside the
// OccurrenceRecorder's transaction, never through AdjustBalance.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeleteAccount(ctx context.Context, accountID string) error

	// AdjustBalance applies an explicit user-initiated balance correction.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
