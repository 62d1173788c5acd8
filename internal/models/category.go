package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a teaching category carrying the weekly hour norm used by the
// workload engine. Categories referenced by members cannot be deleted.
type Category struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:128;uniqueIndex;not null" json:"name"`
	WeeklyHourNorm decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"weekly_hour_norm"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
