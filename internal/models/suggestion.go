package models

import (
	"time"
)

type SuggestionStatus string

const (
	SuggestionStatusPending   SuggestionStatus = "pending"
	SuggestionStatusReviewing SuggestionStatus = "reviewing"
	SuggestionStatusAccepted  SuggestionStatus = "accepted"
	SuggestionStatusRejected  SuggestionStatus = "rejected"
)

// Suggestion is a community proposal for new content. Upvotes mirrors the
// number of SuggestionVote rows and is mutated in the same transaction as
// the vote row itself.
type Suggestion struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Title        string           `gorm:"size:200;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	SubmittedBy  string           `gorm:"size:64;not null;index" json:"submitted_by"`
	Practitioner Practitioner     `gorm:"foreignKey:SubmittedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Status       SuggestionStatus `gorm:"type:varchar(20);default:'pending';not null" json:"status"`
	Upvotes      int              `gorm:"default:0;not null" json:"upvotes"`
	CreatedAt    time.Time        `json:"created_at"`
}
