package mapping

import (
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/kakeibo-app/kakeibo_backend/internal/models"
)

// ToModelEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:          d.EntryID,
		UserID:           d.UserID,
		Kind:             string(d.Kind),
		Amount:           d.Amount,
		CategoryID:       d.CategoryID,
		PaymentMethodID:  d.PaymentMethodID,
		EntryDate:        d.EntryDate,
		Memo:             d.Memo,
		SourceTemplateID: d.SourceTemplateID,
		OccurrenceDate:   d.OccurrenceDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:          m.EntryID,
		UserID:           m.UserID,
		Kind:             domain.EntryKind(m.Kind),
		Amount:           m.Amount,
		CategoryID:       m.CategoryID,
		PaymentMethodID:  m.PaymentMethodID,
		EntryDate:        m.EntryDate,
		Memo:             m.Memo,
		SourceTemplateID: m.SourceTemplateID,
		OccurrenceDate:   m.OccurrenceDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries
func ToDomainEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
