package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is an immutable recorded expense or income transaction.
// Entries produced by the recurring engine carry provenance back to the
// template and the exact occurrence date they were generated for; at most one
// entry exists for a given (SourceTemplateID, OccurrenceDate) pair.
type LedgerEntry struct {
	EntryID          string          `json:"entryID"`
	UserID           string          `json:"userID"`
	Kind             EntryKind       `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	CategoryID       string          `json:"categoryID"`
	PaymentMethodID  *string         `json:"paymentMethodID,omitempty"`
	EntryDate        time.Time       `json:"entryDate"`
	Memo             string          `json:"memo"`
	SourceTemplateID *string         `json:"sourceTemplateID,omitempty"`
	OccurrenceDate   *time.Time      `json:"occurrenceDate,omitempty"`
	AuditFields
}
