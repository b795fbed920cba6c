package services

import (
	"context"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
)

// CategorySvcFacade covers category and payment-method administration.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string, kind *domain.EntryKind) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
	CreatePaymentMethod(ctx context.Context, userID string, req dto.CreatePaymentMethodRequest) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, userID, paymentMethodID string) error
}
