package dto

import (
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryTotalResponse is one per-category line of a period summary.
type CategoryTotalResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Kind         string          `json:"kind"`
	Total        decimal.Decimal `json:"total"`
}

// PeriodSummaryResponse aggregates one reporting period.
type PeriodSummaryResponse struct {
	TotalExpense decimal.Decimal         `json:"totalExpense"`
	TotalIncome  decimal.Decimal         `json:"totalIncome"`
	ByCategory   []CategoryTotalResponse `json:"byCategory"`
}

// ToPeriodSummaryResponse converts a domain PeriodSummary to its response DTO.
func ToPeriodSummaryResponse(s *domain.PeriodSummary) PeriodSummaryResponse {
	byCategory := make([]CategoryTotalResponse, len(s.ByCategory))
	for i, c := range s.ByCategory {
		byCategory[i] = CategoryTotalResponse{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Kind:         string(c.Kind),
			Total:        c.Total,
		}
	}
	return PeriodSummaryResponse{
		TotalExpense: s.TotalExpense,
		TotalIncome:  s.TotalIncome,
		ByCategory:   byCategory,
	}
}
