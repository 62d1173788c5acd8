package dto

import (
	"time"

	"github.com/claustro-app/claustro-api/internal/models"
)

// PaginationMeta describes paging information attached to list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewsCreateRequest publishes a news item.
type NewsCreateRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=255"`
	Body     string `json:"body" validate:"required,min=1"`
	IsPinned bool   `json:"is_pinned"`
}

// NewsUpdateRequest edits a news item.
type NewsUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=3,max=255"`
	Body     *string `json:"body" validate:"omitempty,min=1"`
	IsPinned *bool   `json:"is_pinned"`
}

// NewsResponse is the serialized representation of a news item.
type NewsResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
	IsPinned    bool      `json:"is_pinned"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewsListResponse wraps a news page with pagination metadata.
type NewsListResponse struct {
	Items      []NewsResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
	CacheHit   bool           `json:"-"`
}

// NewNewsResponse converts a news model into a DTO.
func NewNewsResponse(model models.News) NewsResponse {
	return NewsResponse{
		ID:          model.ID,
		Title:       model.Title,
		Body:        model.Body,
		PublishedAt: model.PublishedAt,
		IsPinned:    model.IsPinned,
		CreatedAt:   model.CreatedAt,
	}
}

// EventCreateRequest publishes an event.
type EventCreateRequest struct {
	Title    string     `json:"title" validate:"required,min=3,max=255"`
	Body     string     `json:"body" validate:"omitempty"`
	Location string     `json:"location" validate:"omitempty,max=255"`
	StartsAt time.Time  `json:"starts_at" validate:"required"`
	EndsAt   *time.Time `json:"ends_at"`
}

// EventResponse is the serialized representation of an event.
type EventResponse struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Location  string     `json:"location"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewEventResponse converts an event model into a DTO.
func NewEventResponse(model models.Event) EventResponse {
	return EventResponse{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		Location:  model.Location,
		StartsAt:  model.StartsAt,
		EndsAt:    model.EndsAt,
		CreatedAt: model.CreatedAt,
	}
}

// NewEventResponseSlice converts events into DTOs.
func NewEventResponseSlice(items []models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewEventResponse(item))
	}
	return out
}

// CallCreateRequest publishes a call with a closing deadline.
type CallCreateRequest struct {
	Title    string    `json:"title" validate:"required,min=3,max=255"`
	Body     string    `json:"body" validate:"omitempty"`
	Deadline time.Time `json:"deadline" validate:"required"`
}

// CallResponse is the serialized representation of a call.
type CallResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Deadline  time.Time `json:"deadline"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCallResponse converts a call model into a DTO.
func NewCallResponse(model models.Call) CallResponse {
	return CallResponse{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		Deadline:  model.Deadline,
		CreatedAt: model.CreatedAt,
	}
}

// NewCallResponseSlice converts calls into DTOs.
func NewCallResponseSlice(items []models.Call) []CallResponse {
	out := make([]CallResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewCallResponse(item))
	}
	return out
}
