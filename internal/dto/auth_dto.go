package dto

import "time"

// RegisterRequest is the payload to create a faculty member account.
// Accounts start unapproved; an administrator approves them before they
// participate in workload calculations.
type RegisterRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=128"`
	Surname      string `json:"surname" validate:"required,min=2,max=128"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	DepartmentID *uint  `json:"department_id"`
}

// LoginRequest is the credential payload for token issuance.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and the authenticated member.
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Member    MemberResponse `json:"member"`
}
