package repositories

import (
	"context"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
)

// CategoryReader defines read operations for categories and payment methods
type CategoryReader interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategoriesByUser(ctx context.Context, userID string, kind *domain.EntryKind) ([]domain.Category, error)
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
	ListPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
}

// CategoryWriter defines write operations for categories and payment methods
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
	SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, paymentMethodID string) error
}

// CategoryRepositoryFacade combines category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
