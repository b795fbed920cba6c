package dto

import (
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating a balance account.
type CreateAccountRequest struct {
	Name        string          `json:"name" binding:"required"`
	AccountType string          `json:"accountType" binding:"required,oneof=BANK CASH EMONEY"`
	Balance     decimal.Decimal `json:"balance"`
}

// UpdateAccountRequest defines the editable fields of an account. Balance is
// not editable here; use the adjust endpoint for corrections.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	AccountType *string `json:"accountType,omitempty" binding:"omitempty,oneof=BANK CASH EMONEY"`
}

// AdjustBalanceRequest applies an explicit balance correction.
type AdjustBalanceRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string          `json:"accountID"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		Balance:     a.Balance,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts to response DTOs.
func ToAccountResponses(as []domain.Account) []AccountResponse {
	resps := make([]AccountResponse, len(as))
	for i := range as {
		resps[i] = ToAccountResponse(&as[i])
	}
	return resps
}
