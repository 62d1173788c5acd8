package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/claustro-app/claustro-api/internal/models"
)

// ActivityTypeCreateRequest creates an activity type. When AutoClassify is
// set the capability flags are derived from the name patterns instead of the
// explicit flag fields; used when importing legacy free-text type lists.
type ActivityTypeCreateRequest struct {
	Name                 string `json:"name" validate:"required,min=2,max=255"`
	RequiresGroup        bool   `json:"requires_group"`
	RequiresStudentCount bool   `json:"requires_student_count"`
	IsDirectTeaching     bool   `json:"is_direct_teaching"`
	CountsAsPregrad      bool   `json:"counts_as_pregrad"`
	CountsAsPreparation  bool   `json:"counts_as_preparation"`
	AutoClassify         bool   `json:"auto_classify"`
}

// ActivityTypeUpdateRequest edits an activity type; nil fields keep their
// current value.
type ActivityTypeUpdateRequest struct {
	Name                 *string `json:"name" validate:"omitempty,min=2,max=255"`
	RequiresGroup        *bool   `json:"requires_group"`
	RequiresStudentCount *bool   `json:"requires_student_count"`
	IsDirectTeaching     *bool   `json:"is_direct_teaching"`
	CountsAsPregrad      *bool   `json:"counts_as_pregrad"`
	CountsAsPreparation  *bool   `json:"counts_as_preparation"`
}

// ActivityTypeResponse is the serialized representation of an activity type.
type ActivityTypeResponse struct {
	ID                   uint   `json:"id"`
	Name                 string `json:"name"`
	RequiresGroup        bool   `json:"requires_group"`
	RequiresStudentCount bool   `json:"requires_student_count"`
	IsDirectTeaching     bool   `json:"is_direct_teaching"`
	CountsAsPregrad      bool   `json:"counts_as_pregrad"`
	CountsAsPreparation  bool   `json:"counts_as_preparation"`
}

// NewActivityTypeResponse converts an activity type model into a DTO.
func NewActivityTypeResponse(model models.ActivityType) ActivityTypeResponse {
	return ActivityTypeResponse{
		ID:                   model.ID,
		Name:                 model.Name,
		RequiresGroup:        model.RequiresGroup,
		RequiresStudentCount: model.RequiresStudentCount,
		IsDirectTeaching:     model.IsDirectTeaching,
		CountsAsPregrad:      model.CountsAsPregrad,
		CountsAsPreparation:  model.CountsAsPreparation,
	}
}

// NewActivityTypeResponseSlice converts activity types into DTOs.
func NewActivityTypeResponseSlice(items []models.ActivityType) []ActivityTypeResponse {
	out := make([]ActivityTypeResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewActivityTypeResponse(item))
	}
	return out
}

// ActivityRecordCreateRequest records a planned activity for a member.
type ActivityRecordCreateRequest struct {
	ActivityTypeID uint            `json:"activity_type_id" validate:"required"`
	Date           string          `json:"date" validate:"required,datetime=2006-01-02"`
	Hours          decimal.Decimal `json:"hours"`
	Group          *string         `json:"group" validate:"omitempty,max=64"`
	StudentCount   *int            `json:"student_count" validate:"omitempty,min=1"`
}

// ActivityRecordUpdateRequest updates an activity record.
type ActivityRecordUpdateRequest struct {
	ActivityTypeID *uint            `json:"activity_type_id"`
	Date           *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Hours          *decimal.Decimal `json:"hours"`
	Group          *string          `json:"group" validate:"omitempty,max=64"`
	StudentCount   *int             `json:"student_count" validate:"omitempty,min=1"`
}

// ActivityRecordResponse is the serialized representation of a record.
type ActivityRecordResponse struct {
	ID             uint            `json:"id"`
	MemberID       uint            `json:"member_id"`
	ActivityTypeID uint            `json:"activity_type_id"`
	ActivityType   string          `json:"activity_type,omitempty"`
	Date           string          `json:"date"`
	Hours          decimal.Decimal `json:"hours"`
	Group          *string         `json:"group,omitempty"`
	StudentCount   *int            `json:"student_count,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewActivityRecordResponse converts a record model into a DTO.
func NewActivityRecordResponse(model models.ActivityRecord) ActivityRecordResponse {
	return ActivityRecordResponse{
		ID:             model.ID,
		MemberID:       model.MemberID,
		ActivityTypeID: model.ActivityTypeID,
		ActivityType:   model.ActivityType.Name,
		Date:           model.Date.Format("2006-01-02"),
		Hours:          model.Hours,
		Group:          model.Group,
		StudentCount:   model.StudentCount,
		CreatedAt:      model.CreatedAt,
	}
}

// NewActivityRecordResponseSlice converts records into DTOs.
func NewActivityRecordResponseSlice(items []models.ActivityRecord) []ActivityRecordResponse {
	out := make([]ActivityRecordResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewActivityRecordResponse(item))
	}
	return out
}
