package dto

import (
	"time"

	"github.com/claustro-app/claustro-api/internal/models"
)

// NotificationCreateRequest publishes a notification to a member.
type NotificationCreateRequest struct {
	MemberID uint   `json:"member_id" validate:"required"`
	Type     string `json:"type" validate:"required,max=64"`
	Message  string `json:"message" validate:"required,max=2000"`
}

// NotificationResponse is the serialized representation of a notification.
type NotificationResponse struct {
	ID        uint      `json:"id"`
	MemberID  uint      `json:"member_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationResponse converts a notification model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        model.ID,
		MemberID:  model.MemberID,
		Type:      model.Type,
		Message:   model.Message,
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}

// NewNotificationResponseSlice converts notifications into DTOs.
func NewNotificationResponseSlice(items []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewNotificationResponse(item))
	}
	return out
}
