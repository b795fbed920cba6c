package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the row model for the ledger_entries table.
type LedgerEntry struct {
	EntryID          string          `db:"entry_id"`
	UserID           string          `db:"user_id"`
	Kind             string          `db:"kind"`
	Amount           decimal.Decimal `db:"amount"`
	CategoryID       string          `db:"category_id"`
	PaymentMethodID  *string         `db:"payment_method_id"`
	EntryDate        time.Time       `db:"entry_date"`
	Memo             string          `db:"memo"`
	SourceTemplateID *string         `db:"source_template_id"`
	OccurrenceDate   *time.Time      `db:"occurrence_date"`
	AuditFields
}
