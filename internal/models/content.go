package models

import "time"

// News is a published news item shown on the faculty portal.
type News struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	PublishedAt time.Time  `gorm:"index" json:"published_at"`
	IsPinned    bool       `gorm:"index" json:"is_pinned"`
	AuthorID    uint       `gorm:"index" json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Event is a scheduled faculty event.
type Event struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	Location  string     `gorm:"size:255" json:"location"`
	StartsAt  time.Time  `gorm:"index;not null" json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	AuthorID  uint       `gorm:"index" json:"author_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Call is a published call for papers, projects or applications with a
// closing deadline.
type Call struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Deadline  time.Time `gorm:"index;not null" json:"deadline"`
	AuthorID  uint      `gorm:"index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
