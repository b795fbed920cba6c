package dto

import (
	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
)

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Kind      string `json:"kind" binding:"required,oneof=EXPENSE INCOME"`
	SortOrder int    `json:"sortOrder"`
}

// UpdateCategoryRequest defines the editable fields of a category.
type UpdateCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	SortOrder  int    `json:"sortOrder"`
}

// ToCategoryResponse converts a domain Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Kind:       string(c.Kind),
		SortOrder:  c.SortOrder,
	}
}

// ToCategoryResponses converts a slice of domain categories to response DTOs.
func ToCategoryResponses(cs []domain.Category) []CategoryResponse {
	resps := make([]CategoryResponse, len(cs))
	for i := range cs {
		resps[i] = ToCategoryResponse(&cs[i])
	}
	return resps
}

// CreatePaymentMethodRequest defines the payload for creating a payment method.
type CreatePaymentMethodRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sortOrder"`
}

// PaymentMethodResponse defines the data returned for a payment method.
type PaymentMethodResponse struct {
	PaymentMethodID string `json:"paymentMethodID"`
	Name            string `json:"name"`
	SortOrder       int    `json:"sortOrder"`
}

// ToPaymentMethodResponse converts a domain PaymentMethod to its response DTO.
func ToPaymentMethodResponse(pm *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		PaymentMethodID: pm.PaymentMethodID,
		Name:            pm.Name,
		SortOrder:       pm.SortOrder,
	}
}

// ToPaymentMethodResponses converts domain payment methods to response DTOs.
func ToPaymentMethodResponses(pms []domain.PaymentMethod) []PaymentMethodResponse {
	resps := make([]PaymentMethodResponse, len(pms))
	for i := range pms {
		resps[i] = ToPaymentMethodResponse(&pms[i])
	}
	return resps
}
