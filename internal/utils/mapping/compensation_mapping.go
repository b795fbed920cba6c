package mapping

import (
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/kakeibo-app/kakeibo_backend/internal/models"
)

// ToModelCompensatingAction converts a domain CompensatingAction to its model
func ToModelCompensatingAction(d domain.CompensatingAction) models.CompensatingAction {
	return models.CompensatingAction{
		ActionID:                   d.ActionID,
		UserID:                     d.UserID,
		TemplateID:                 d.TemplateID,
		EntryID:                    d.EntryID,
		PreviousNextOccurrenceDate: d.PreviousNextOccurrenceDate,
		Amount:                     d.Amount,
		TemplateName:               d.TemplateName,
		AppliedAccountID:           d.AppliedAccountID,
		Undone:                     d.Undone,
		CreatedAt:                  d.CreatedAt,
	}
}

// ToDomainCompensatingAction converts a model CompensatingAction to its domain form
func ToDomainCompensatingAction(m models.CompensatingAction) domain.CompensatingAction {
	return domain.CompensatingAction{
		ActionID:                   m.ActionID,
		UserID:                     m.UserID,
		TemplateID:                 m.TemplateID,
		EntryID:                    m.EntryID,
		PreviousNextOccurrenceDate: m.PreviousNextOccurrenceDate,
		Amount:                     m.Amount,
		TemplateName:               m.TemplateName,
		AppliedAccountID:           m.AppliedAccountID,
		Undone:                     m.Undone,
		CreatedAt:                  m.CreatedAt,
	}
}
