package models

import "time"

// NewsPost is an announcement shown on the landing feed. Posts without a
// publication timestamp are drafts and never listed.
type NewsPost struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Body         string     `gorm:"type:text" json:"body"`
	InstructorID uint       `gorm:"index" json:"instructor_id"`
	PublishedAt  *time.Time `gorm:"index" json:"published_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
