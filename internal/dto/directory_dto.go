package dto

import (
	"time"

	"github.com/claustro-app/claustro-api/internal/models"
)

// DepartmentCreateRequest creates a department.
type DepartmentCreateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

// DepartmentUpdateRequest renames a department.
type DepartmentUpdateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

// DepartmentResponse is the serialized representation of a department.
type DepartmentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDepartmentResponse converts a department model into a DTO.
func NewDepartmentResponse(model models.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}
}

// NewDepartmentResponseSlice converts departments into DTOs.
func NewDepartmentResponseSlice(items []models.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewDepartmentResponse(item))
	}
	return out
}

// RoleResponse is the serialized representation of a role.
type RoleResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewRoleResponseSlice converts roles into DTOs.
func NewRoleResponseSlice(items []models.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(items))
	for _, item := range items {
		out = append(out, RoleResponse{ID: item.ID, Name: item.Name})
	}
	return out
}
