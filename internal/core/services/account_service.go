package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
	portssvc "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/services"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
	"github.com/kakeibo-app/kakeibo_backend/internal/middleware"
)

// accountService manages balance accounts. The recurring engine adjusts
// balances inside its own transactions; this service covers everything else.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) findOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// CreateAccount persists a new balance account.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %s", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		AccountType: accountType,
		Balance:     req.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves one of the user's accounts.
func (s *accountService) GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	return s.findOwnedAccount(ctx, userID, accountID)
}

// ListAccounts retrieves all of the user's accounts.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount edits an account's name or type. Balance is not editable
// here; corrections go through AdjustBalance.
func (s *accountService) UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.AccountType != nil {
		accountType := domain.AccountType(*req.AccountType)
		if !accountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %s", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = accountType
		updated = true
	}

	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes an account. Templates that still reference it keep
// their stale linked_account_id; the recorder tolerates the dangling
// reference by skipping the balance step.
func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID string) error {
	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// AdjustBalance applies an explicit user-initiated balance correction and
// returns the account with its new balance.
func (s *accountService) AdjustBalance(ctx context.Context, userID, accountID string, delta decimal.Decimal) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.accountRepo.AdjustBalance(ctx, accountID, delta, userID, now); err != nil {
		logger.Error("Failed to adjust balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	return s.accountRepo.FindAccountByID(ctx, accountID)
}
