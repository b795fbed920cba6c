package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompensatingAction pairs one recorded occurrence with the state needed to
// reverse it. Actions are append-only: the only mutation ever applied is
// flipping Undone to true, exactly once. For a given template, at most one
// action with Undone == false has its PreviousNextOccurrenceDate inside any
// reporting period, so "the currently undoable recording" is unambiguous.
type CompensatingAction struct {
	ActionID                   string          `json:"actionID"`
	UserID                     string          `json:"userID"`
	TemplateID                 string          `json:"templateID"`
	EntryID                    string          `json:"entryID"`
	PreviousNextOccurrenceDate time.Time       `json:"previousNextOccurrenceDate"`
	Amount                     decimal.Decimal `json:"amount"`       // snapshot for display
	TemplateName               string          `json:"templateName"` // snapshot for display
	AppliedAccountID           *string         `json:"appliedAccountID,omitempty"`
	Undone                     bool            `json:"undone"`
	CreatedAt                  time.Time       `json:"createdAt"`
}
