package models

import (
	"time"
)

// SuggestionVote records one practitioner's upvote on one suggestion.
// The pair is unique: PG enforces it as a second line of defence behind the
// existence check in the vote handler.
type SuggestionVote struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SuggestionID   uint      `gorm:"not null;index;uniqueIndex:idx_suggestion_voter" json:"suggestion_id"`
	PractitionerID string    `gorm:"size:64;not null;index;uniqueIndex:idx_suggestion_voter" json:"practitioner_id"`
	CreatedAt      time.Time `json:"created_at"`
}
