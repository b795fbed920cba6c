package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FrequencyUnit is the calendar unit a recurring template advances by.
type FrequencyUnit string

const (
	Months FrequencyUnit = "MONTHS"
	Years  FrequencyUnit = "YEARS"
)

// IsValid reports whether the unit is one of the supported values.
func (u FrequencyUnit) IsValid() bool {
	switch u {
	case Months, Years:
		return true
	}
	return false
}

// EntryKind distinguishes expense templates/entries from income ones.
type EntryKind string

const (
	Expense EntryKind = "EXPENSE"
	Income  EntryKind = "INCOME"
)

// IsValid reports whether the kind is one of the supported values.
func (k EntryKind) IsValid() bool {
	switch k {
	case Expense, Income:
		return true
	}
	return false
}

// RecurringTemplate is a standing instruction to produce ledger entries on a
// schedule. NextOccurrenceDate always points at the next unrecorded
// occurrence; it only moves forward (advanced by the recorder) except when an
// undo restores the previous value.
type RecurringTemplate struct {
	TemplateID         string          `json:"templateID"`
	UserID             string          `json:"userID"`
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	Kind               EntryKind       `json:"kind"`
	CategoryID         string          `json:"categoryID"`
	PaymentMethodID    *string         `json:"paymentMethodID,omitempty"` // expense templates only
	FrequencyUnit      FrequencyUnit   `json:"frequencyUnit"`
	IntervalCount      int             `json:"intervalCount"` // >= 1, enforced at creation
	NextOccurrenceDate time.Time       `json:"nextOccurrenceDate"`
	LinkedAccountID    *string         `json:"linkedAccountID,omitempty"` // income templates that credit a balance
	GroupID            *string         `json:"groupID,omitempty"`         // display grouping only
	IsChecked          bool            `json:"isChecked"`                 // UI reminder flag, not a workflow state
	AuditFields
}
