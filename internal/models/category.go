package models

// Category is the row model for the categories table.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Kind       string `db:"kind"`
	SortOrder  int    `db:"sort_order"`
	AuditFields
}

// PaymentMethod is the row model for the payment_methods table.
type PaymentMethod struct {
	PaymentMethodID string `db:"payment_method_id"`
	UserID          string `db:"user_id"`
	Name            string `db:"name"`
	SortOrder       int    `db:"sort_order"`
	AuditFields
}
