package models

import (
	"time"
)

// Recommendation is a precomputed personalized pick, rebuilt nightly by the
// popularity service. The homepage reads it as-is; nothing is ranked at
// request time.
type Recommendation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PractitionerID string    `gorm:"size:64;not null;index" json:"practitioner_id"`
	PostID         uint      `gorm:"not null;index" json:"post_id"`
	Post           Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	Rank           int       `gorm:"not null" json:"rank"`
	CreatedAt      time.Time `json:"created_at"`
}
