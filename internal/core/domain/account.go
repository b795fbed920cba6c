package domain

import "github.com/shopspring/decimal"

// AccountType classifies a linked balance account.
type AccountType string

const (
	Bank   AccountType = "BANK"
	Cash   AccountType = "CASH"
	EMoney AccountType = "EMONEY"
)

// IsValid reports whether the account type is one of the supported values.
func (t AccountType) IsValid() bool {
	switch t {
	case Bank, Cash, EMoney:
		return true
	}
	return false
}

// Account is a balance-bearing account (bank, cash, e-money). The balance is
// mutated by explicit adjustments and, for income templates with a linked
// account, inside the same atomic operation as a recording or its undo.
type Account struct {
	AccountID   string          `json:"accountID"`
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
