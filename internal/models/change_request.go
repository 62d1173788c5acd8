package models

import "time"

// Category change request lifecycle states.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// CategoryChangeRequest is a member's petition to move to another teaching
// category. Creation is transactional with its documents; approval updates
// the member's category.
type CategoryChangeRequest struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	MemberID            uint              `gorm:"not null;index" json:"member_id"`
	Member              Member            `json:"member,omitempty"`
	CurrentCategoryID   *uint             `json:"current_category_id"`
	RequestedCategoryID uint              `gorm:"not null" json:"requested_category_id"`
	RequestedCategory   Category          `gorm:"foreignKey:RequestedCategoryID" json:"requested_category,omitempty"`
	Status              string            `gorm:"size:32;not null;default:pending;index" json:"status"`
	Justification       string            `gorm:"type:text" json:"justification"`
	DecidedBy           *uint             `json:"decided_by"`
	DecidedAt           *time.Time        `json:"decided_at"`
	Documents           []RequestDocument `gorm:"foreignKey:RequestID" json:"documents,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// RequestDocument is an uploaded attachment backing a change request.
type RequestDocument struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID uint      `gorm:"not null;index" json:"request_id"`
	FileName  string    `gorm:"size:255;not null" json:"file_name"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	MimeType  string    `gorm:"size:64" json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `gorm:"size:64" json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}
