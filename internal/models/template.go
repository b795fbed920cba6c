package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringTemplate is the row model for the recurring_templates table.
type RecurringTemplate struct {
	TemplateID         string          `db:"template_id"`
	UserID             string          `db:"user_id"`
	Name               string          `db:"name"`
	Amount             decimal.Decimal `db:"amount"`
	Kind               string          `db:"kind"`
	CategoryID         string          `db:"category_id"`
	PaymentMethodID    *string         `db:"payment_method_id"`
	FrequencyUnit      string          `db:"frequency_unit"`
	IntervalCount      int             `db:"interval_count"`
	NextOccurrenceDate time.Time       `db:"next_occurrence_date"`
	LinkedAccountID    *string         `db:"linked_account_id"`
	GroupID            *string         `db:"group_id"`
	IsChecked          bool            `db:"is_checked"`
	AuditFields
}
