package domain

// Category is reference data owned by the settings subsystem; the recurring
// engine only ever reads category IDs.
type Category struct {
	CategoryID string    `json:"categoryID"`
	UserID     string    `json:"userID"`
	Name       string    `json:"name"`
	Kind       EntryKind `json:"kind"`
	SortOrder  int       `json:"sortOrder"`
	AuditFields
}

// PaymentMethod is reference data for expense entries (cash, card, ...).
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"`
	UserID          string `json:"userID"`
	Name            string `json:"name"`
	SortOrder       int    `json:"sortOrder"`
	AuditFields
}
