package dto

import (
	"time"

	"github.com/claustro-app/claustro-api/internal/models"
)

// ChangeRequestCreateRequest petitions a move to another teaching category.
// Documents arrive as multipart files alongside this payload.
type ChangeRequestCreateRequest struct {
	RequestedCategoryID uint   `json:"requested_category_id" form:"requested_category_id" validate:"required"`
	Justification       string `json:"justification" form:"justification" validate:"required,min=10,max=4000"`
}

// ChangeRequestDecideRequest records an administrator ruling.
type ChangeRequestDecideRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// DocumentResponse describes a stored attachment.
type DocumentResponse struct {
	ID        uint   `json:"id"`
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	Checksum  string `json:"checksum"`
}

// ChangeRequestResponse is the serialized representation of a request.
type ChangeRequestResponse struct {
	ID                  uint               `json:"id"`
	MemberID            uint               `json:"member_id"`
	CurrentCategoryID   *uint              `json:"current_category_id,omitempty"`
	RequestedCategoryID uint               `json:"requested_category_id"`
	RequestedCategory   string             `json:"requested_category,omitempty"`
	Status              string             `json:"status"`
	Justification       string             `json:"justification"`
	DecidedBy           *uint              `json:"decided_by,omitempty"`
	DecidedAt           *time.Time         `json:"decided_at,omitempty"`
	Documents           []DocumentResponse `json:"documents,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

// NewChangeRequestResponse converts a change request model into a DTO.
func NewChangeRequestResponse(model models.CategoryChangeRequest) ChangeRequestResponse {
	response := ChangeRequestResponse{
		ID:                  model.ID,
		MemberID:            model.MemberID,
		CurrentCategoryID:   model.CurrentCategoryID,
		RequestedCategoryID: model.RequestedCategoryID,
		RequestedCategory:   model.RequestedCategory.Name,
		Status:              model.Status,
		Justification:       model.Justification,
		DecidedBy:           model.DecidedBy,
		DecidedAt:           model.DecidedAt,
		CreatedAt:           model.CreatedAt,
	}
	for _, document := range model.Documents {
		response.Documents = append(response.Documents, DocumentResponse{
			ID:        document.ID,
			FileName:  document.FileName,
			URL:       document.URL,
			MimeType:  document.MimeType,
			SizeBytes: document.SizeBytes,
			Checksum:  document.Checksum,
		})
	}
	return response
}

// NewChangeRequestResponseSlice converts change requests into DTOs.
func NewChangeRequestResponseSlice(items []models.CategoryChangeRequest) []ChangeRequestResponse {
	out := make([]ChangeRequestResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewChangeRequestResponse(item))
	}
	return out
}
