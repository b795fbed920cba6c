package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one row of a period summary: the total recorded amount for
// a category within the period.
type CategoryTotal struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Kind         EntryKind       `json:"kind"`
	Total        decimal.Decimal `json:"total"`
}

// PeriodSummary aggregates a user's ledger for one reporting period.
type PeriodSummary struct {
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	ByCategory   []CategoryTotal `json:"byCategory"`
}
