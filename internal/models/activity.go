package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType is static reference data describing a kind of plannable
// activity. The capability flags replace the legacy name-substring
// classification: the workload engine only ever reads the flags.
type ActivityType struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	RequiresGroup        bool      `gorm:"not null;default:false" json:"requires_group"`
	RequiresStudentCount bool      `gorm:"not null;default:false" json:"requires_student_count"`
	IsDirectTeaching     bool      `gorm:"not null;default:false" json:"is_direct_teaching"`
	CountsAsPregrad      bool      `gorm:"not null;default:false" json:"counts_as_pregrad"`
	CountsAsPreparation  bool      `gorm:"not null;default:false" json:"counts_as_preparation"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ActivityRecord is a planned activity entry owned by a member. Group and
// student count are required only when the activity type demands them.
type ActivityRecord struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	MemberID       uint            `gorm:"not null;index" json:"member_id"`
	Member         Member          `json:"member,omitempty"`
	ActivityTypeID uint            `gorm:"not null;index" json:"activity_type_id"`
	ActivityType   ActivityType    `json:"activity_type,omitempty"`
	Date           time.Time       `gorm:"not null;type:date;index" json:"date"`
	Hours          decimal.Decimal `gorm:"type:numeric(6,2);not null" json:"hours"`
	Group          *string         `gorm:"size:64" json:"group"`
	StudentCount   *int            `json:"student_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
