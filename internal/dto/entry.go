package dto

import (
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the payload for creating a manual ledger entry.
type CreateEntryRequest struct {
	Kind            string          `json:"kind" binding:"required,oneof=EXPENSE INCOME"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	CategoryID      string          `json:"categoryID" binding:"required,uuid"`
	PaymentMethodID *string         `json:"paymentMethodID,omitempty" binding:"omitempty,uuid"`
	EntryDate       time.Time       `json:"entryDate" binding:"required"`
	Memo            string          `json:"memo"`
}

// UpdateEntryRequest defines the editable fields of a manual entry.
type UpdateEntryRequest struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	CategoryID      *string          `json:"categoryID,omitempty" binding:"omitempty,uuid"`
	PaymentMethodID *string          `json:"paymentMethodID,omitempty" binding:"omitempty,uuid"`
	EntryDate       *time.Time       `json:"entryDate,omitempty"`
	Memo            *string          `json:"memo,omitempty"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID          string          `json:"entryID"`
	Kind             string          `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	CategoryID       string          `json:"categoryID"`
	PaymentMethodID  *string         `json:"paymentMethodID,omitempty"`
	EntryDate        time.Time       `json:"entryDate"`
	Memo             string          `json:"memo"`
	SourceTemplateID *string         `json:"sourceTemplateID,omitempty"`
	OccurrenceDate   *time.Time      `json:"occurrenceDate,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToEntryResponse converts a domain LedgerEntry to its response DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:          e.EntryID,
		Kind:             string(e.Kind),
		Amount:           e.Amount,
		CategoryID:       e.CategoryID,
		PaymentMethodID:  e.PaymentMethodID,
		EntryDate:        e.EntryDate,
		Memo:             e.Memo,
		SourceTemplateID: e.SourceTemplateID,
		OccurrenceDate:   e.OccurrenceDate,
		CreatedAt:        e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries to response DTOs.
func ToEntryResponses(es []domain.LedgerEntry) []EntryResponse {
	resps := make([]EntryResponse, len(es))
	for i := range es {
		resps[i] = ToEntryResponse(&es[i])
	}
	return resps
}

// ListEntriesParams holds query parameters for listing entries.
type ListEntriesParams struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Limit       int
	NextToken   *string
}

// ListEntriesResponse is a page of ledger entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
