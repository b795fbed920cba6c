package dto

import (
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTemplateRequest defines the payload for creating a recurring template.
// IntervalCount < 1 is rejected here, at creation time; the schedule
// calculator never sees an invalid interval.
type CreateTemplateRequest struct {
	Name               string          `json:"name" binding:"required"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Kind               string          `json:"kind" binding:"required,oneof=EXPENSE INCOME"`
	CategoryID         string          `json:"categoryID" binding:"required,uuid"`
	PaymentMethodID    *string         `json:"paymentMethodID,omitempty" binding:"omitempty,uuid"`
	FrequencyUnit      string          `json:"frequencyUnit" binding:"required,oneof=MONTHS YEARS"`
	IntervalCount      int             `json:"intervalCount" binding:"required,min=1"`
	NextOccurrenceDate time.Time       `json:"nextOccurrenceDate" binding:"required"`
	LinkedAccountID    *string         `json:"linkedAccountID,omitempty" binding:"omitempty,uuid"`
	GroupID            *string         `json:"groupID,omitempty"`
}

// UpdateTemplateRequest defines the editable fields of a template. The
// schedule position (nextOccurrenceDate) is not editable; it moves only via
// record and undo.
type UpdateTemplateRequest struct {
	Name            *string          `json:"name,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	CategoryID      *string          `json:"categoryID,omitempty" binding:"omitempty,uuid"`
	PaymentMethodID *string          `json:"paymentMethodID,omitempty" binding:"omitempty,uuid"`
	LinkedAccountID *string          `json:"linkedAccountID,omitempty" binding:"omitempty,uuid"`
	GroupID         *string          `json:"groupID,omitempty"`
	IsChecked       *bool            `json:"isChecked,omitempty"`
}

// TemplateResponse defines the data returned for a recurring template.
type TemplateResponse struct {
	TemplateID         string          `json:"templateID"`
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	Kind               string          `json:"kind"`
	CategoryID         string          `json:"categoryID"`
	PaymentMethodID    *string         `json:"paymentMethodID,omitempty"`
	FrequencyUnit      string          `json:"frequencyUnit"`
	IntervalCount      int             `json:"intervalCount"`
	NextOccurrenceDate time.Time       `json:"nextOccurrenceDate"`
	LinkedAccountID    *string         `json:"linkedAccountID,omitempty"`
	GroupID            *string         `json:"groupID,omitempty"`
	IsChecked          bool            `json:"isChecked"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ToTemplateResponse converts a domain RecurringTemplate to its response DTO.
func ToTemplateResponse(t *domain.RecurringTemplate) TemplateResponse {
	return TemplateResponse{
		TemplateID:         t.TemplateID,
		Name:               t.Name,
		Amount:             t.Amount,
		Kind:               string(t.Kind),
		CategoryID:         t.CategoryID,
		PaymentMethodID:    t.PaymentMethodID,
		FrequencyUnit:      string(t.FrequencyUnit),
		IntervalCount:      t.IntervalCount,
		NextOccurrenceDate: t.NextOccurrenceDate,
		LinkedAccountID:    t.LinkedAccountID,
		GroupID:            t.GroupID,
		IsChecked:          t.IsChecked,
		CreatedAt:          t.CreatedAt,
	}
}

// ToTemplateResponses converts a slice of domain templates to response DTOs.
func ToTemplateResponses(ts []domain.RecurringTemplate) []TemplateResponse {
	resps := make([]TemplateResponse, len(ts))
	for i := range ts {
		resps[i] = ToTemplateResponse(&ts[i])
	}
	return resps
}

// RecordBatchRequest selects the templates to record for the current period.
type RecordBatchRequest struct {
	TemplateIDs []string `json:"templateIDs" binding:"required,min=1,dive,uuid"`
}

// BatchFailure reports one failed item of a batch recording.
type BatchFailure struct {
	TemplateID string `json:"templateID"`
	Reason     string `json:"reason"`
}

// BatchRecordResult summarizes a batch recording: which templates were
// recorded and which failed, in input order. Succeeded items are never rolled
// back by later failures.
type BatchRecordResult struct {
	Succeeded []string       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

// UndoRequest scopes an undo to the reporting period the UI is showing.
type UndoRequest struct {
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
}

// RecordedOccurrenceResponse describes the outcome of recording one occurrence.
type RecordedOccurrenceResponse struct {
	EntryID            string          `json:"entryID"`
	ActionID           string          `json:"actionID"`
	OccurrenceDate     time.Time       `json:"occurrenceDate"`
	NextOccurrenceDate time.Time       `json:"nextOccurrenceDate"`
	Amount             decimal.Decimal `json:"amount"`
}

// ToRecordedOccurrenceResponse converts a domain RecordedOccurrence to its DTO.
func ToRecordedOccurrenceResponse(rec *domain.RecordedOccurrence) RecordedOccurrenceResponse {
	return RecordedOccurrenceResponse{
		EntryID:            rec.Entry.EntryID,
		ActionID:           rec.Action.ActionID,
		OccurrenceDate:     rec.PreviousOccurrenceDate,
		NextOccurrenceDate: rec.NextOccurrenceDate,
		Amount:             rec.Entry.Amount,
	}
}

// UndoableResponse describes one undoable recording for the UI's undo list.
type UndoableResponse struct {
	ActionID       string          `json:"actionID"`
	TemplateID     string          `json:"templateID"`
	TemplateName   string          `json:"templateName"`
	Amount         decimal.Decimal `json:"amount"`
	OccurrenceDate time.Time       `json:"occurrenceDate"`
	RecordedAt     time.Time       `json:"recordedAt"`
}

// ToUndoableResponses converts domain compensating actions to undo-list DTOs.
func ToUndoableResponses(actions []domain.CompensatingAction) []UndoableResponse {
	resps := make([]UndoableResponse, len(actions))
	for i, a := range actions {
		resps[i] = UndoableResponse{
			ActionID:       a.ActionID,
			TemplateID:     a.TemplateID,
			TemplateName:   a.TemplateName,
			Amount:         a.Amount,
			OccurrenceDate: a.PreviousNextOccurrenceDate,
			RecordedAt:     a.CreatedAt,
		}
	}
	return resps
}
