package services

import (
	"context"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade covers balance-account management. Balance mutations tied
// to recordings happen inside the recurring engine, not here.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID string) error
	AdjustBalance(ctx context.Context, userID, accountID string, delta decimal.Decimal) (*domain.Account, error)
}
