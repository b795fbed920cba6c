package mapping

import (
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/kakeibo-app/kakeibo_backend/internal/models"
)

// ToModelTemplate converts a domain RecurringTemplate to a model RecurringTemplate
func ToModelTemplate(d domain.RecurringTemplate) models.RecurringTemplate {
	return models.RecurringTemplate{
		TemplateID:         d.TemplateID,
		UserID:             d.UserID,
		Name:               d.Name,
		Amount:             d.Amount,
		Kind:               string(d.Kind),
		CategoryID:         d.CategoryID,
		PaymentMethodID:    d.PaymentMethodID,
		FrequencyUnit:      string(d.FrequencyUnit),
		IntervalCount:      d.IntervalCount,
		NextOccurrenceDate: d.NextOccurrenceDate,
		LinkedAccountID:    d.LinkedAccountID,
		GroupID:            d.GroupID,
		IsChecked:          d.IsChecked,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTemplate converts a model RecurringTemplate to a domain RecurringTemplate
func ToDomainTemplate(m models.RecurringTemplate) domain.RecurringTemplate {
	return domain.RecurringTemplate{
		TemplateID:         m.TemplateID,
		UserID:             m.UserID,
		Name:               m.Name,
		Amount:             m.Amount,
		Kind:               domain.EntryKind(m.Kind),
		CategoryID:         m.CategoryID,
		PaymentMethodID:    m.PaymentMethodID,
		FrequencyUnit:      domain.FrequencyUnit(m.FrequencyUnit),
		IntervalCount:      m.IntervalCount,
		NextOccurrenceDate: m.NextOccurrenceDate,
		LinkedAccountID:    m.LinkedAccountID,
		GroupID:            m.GroupID,
		IsChecked:          m.IsChecked,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTemplateSlice converts a slice of model templates to domain templates
func ToDomainTemplateSlice(ms []models.RecurringTemplate) []domain.RecurringTemplate {
	ds := make([]domain.RecurringTemplate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTemplate(m)
	}
	return ds
}
