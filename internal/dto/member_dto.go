package dto

import (
	"time"

	"github.com/claustro-app/claustro-api/internal/models"
)

// MemberResponse is the serialized representation of a faculty member.
type MemberResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Department   string    `json:"department,omitempty"`
	DepartmentID *uint     `json:"department_id,omitempty"`
	Category     string    `json:"category,omitempty"`
	CategoryID   *uint     `json:"category_id,omitempty"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewMemberResponse converts a member model into a DTO.
func NewMemberResponse(model models.Member) MemberResponse {
	response := MemberResponse{
		ID:           model.ID,
		Name:         model.Name,
		Surname:      model.Surname,
		Email:        model.Email,
		Role:         model.Role.Name,
		DepartmentID: model.DepartmentID,
		CategoryID:   model.CategoryID,
		Approved:     model.Approved,
		CreatedAt:    model.CreatedAt,
	}
	if model.Department != nil {
		response.Department = model.Department.Name
	}
	if model.Category != nil {
		response.Category = model.Category.Name
	}
	return response
}

// NewMemberResponseSlice converts a slice of members into DTOs.
func NewMemberResponseSlice(items []models.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewMemberResponse(item))
	}
	return out
}

// MemberUpdateRequest updates mutable member fields.
type MemberUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=128"`
	Surname      *string `json:"surname" validate:"omitempty,min=2,max=128"`
	DepartmentID *uint   `json:"department_id"`
}

// AssignCategoryRequest assigns a teaching category to a member.
type AssignCategoryRequest struct {
	CategoryID uint `json:"category_id" validate:"required"`
}

// MemberListQuery filters member listings.
type MemberListQuery struct {
	Search       string
	RoleID       *uint
	DepartmentID *uint
	CategoryID   *uint
	Approved     *bool
	Page         int
	PageSize     int
}
