package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo-app/kakeibo_backend/internal/apperrors"
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
	portsrepo "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/repositories"
	portssvc "github.com/kakeibo-app/kakeibo_backend/internal/core/ports/services"
	"github.com/kakeibo-app/kakeibo_backend/internal/dto"
)

// categoryService manages the reference data the engine consumes read-only.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory persists a new category.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	kind := domain.EntryKind(req.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, req.Kind)
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Kind:       kind,
		SortOrder:  req.SortOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

// ListCategories retrieves the user's categories, optionally filtered by kind.
func (s *categoryService) ListCategories(ctx context.Context, userID string, kind *domain.EntryKind) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory edits a category's name or sort order.
func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	updated := false
	if req.Name != nil {
		category.Name = *req.Name
		updated = true
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
		updated = true
	}
	if !updated {
		return category, nil
	}

	now := time.Now().UTC()
	category.LastUpdatedAt = now
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return apperrors.ErrNotFound
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// CreatePaymentMethod persists a new payment method.
func (s *categoryService) CreatePaymentMethod(ctx context.Context, userID string, req dto.CreatePaymentMethodRequest) (*domain.PaymentMethod, error) {
	now := time.Now().UTC()
	pm := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		SortOrder:       req.SortOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SavePaymentMethod(ctx, pm); err != nil {
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}
	return &pm, nil
}

// ListPaymentMethods retrieves the user's payment methods.
func (s *categoryService) ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	pms, err := s.categoryRepo.ListPaymentMethodsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return pms, nil
}

// DeletePaymentMethod removes a payment method.
func (s *categoryService) DeletePaymentMethod(ctx context.Context, userID, paymentMethodID string) error {
	pm, err := s.categoryRepo.FindPaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		return err
	}
	if pm.UserID != userID {
		return apperrors.ErrNotFound
	}
	if err := s.categoryRepo.DeletePaymentMethod(ctx, paymentMethodID); err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	return nil
}
