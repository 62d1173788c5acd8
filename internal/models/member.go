package models

import "time"

// Role is the authorization role attached to a faculty member.
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Default role names issued by the auth service.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Department groups members for report filtering.
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is a faculty member. Only approved members with an assigned
// category participate in norm-based calculations.
type Member struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:128;not null" json:"name"`
	Surname      string      `gorm:"size:128;not null" json:"surname"`
	Email        string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"size:255;not null" json:"-"`
	RoleID       uint        `gorm:"not null;index" json:"role_id"`
	Role         Role        `json:"role,omitempty"`
	DepartmentID *uint       `gorm:"index" json:"department_id"`
	Department   *Department `json:"department,omitempty"`
	CategoryID   *uint       `gorm:"index" json:"category_id"`
	Category     *Category   `json:"category,omitempty"`
	Approved     bool        `gorm:"not null;default:false" json:"approved"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
