package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/claustro-app/claustro-api/internal/models"
)

// CategoryCreateRequest creates a teaching category. The weekly norm must be
// positive; the service enforces it since decimals carry no validate tag.
type CategoryCreateRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=128"`
	WeeklyHourNorm decimal.Decimal `json:"weekly_hour_norm"`
}

// CategoryUpdateRequest updates an existing category.
type CategoryUpdateRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=2,max=128"`
	WeeklyHourNorm *decimal.Decimal `json:"weekly_hour_norm"`
}

// CategoryResponse is the serialized representation of a category.
type CategoryResponse struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	WeeklyHourNorm decimal.Decimal `json:"weekly_hour_norm"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewCategoryResponse converts a category model into a DTO.
func NewCategoryResponse(model models.Category) CategoryResponse {
	return CategoryResponse{
		ID:             model.ID,
		Name:           model.Name,
		WeeklyHourNorm: model.WeeklyHourNorm,
		CreatedAt:      model.CreatedAt,
	}
}

// NewCategoryResponseSlice converts categories into DTOs.
func NewCategoryResponseSlice(items []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewCategoryResponse(item))
	}
	return out
}
