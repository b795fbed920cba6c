package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompensatingAction is the row model for the compensating_actions table.
// Rows are append-only; only the undone flag is ever updated.
type CompensatingAction struct {
	ActionID                   string          `db:"action_id"`
	UserID                     string          `db:"user_id"`
	TemplateID                 string          `db:"template_id"`
	EntryID                    string          `db:"entry_id"`
	PreviousNextOccurrenceDate time.Time       `db:"previous_next_occurrence_date"`
	Amount                     decimal.Decimal `db:"amount"`
	TemplateName               string          `db:"template_name"`
	AppliedAccountID           *string         `db:"applied_account_id"`
	Undone                     bool            `db:"undone"`
	CreatedAt                  time.Time       `db:"created_at"`
}
