package models

import (
	"time"
)

type Post struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	AuthorID   string       `gorm:"size:64;not null;index" json:"author_id"`
	Author     Practitioner `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Title      string       `gorm:"not null" json:"title"`
	Content    string       `gorm:"type:text" json:"content"` // markdown source
	Score      int          `gorm:"default:0" json:"score"`   // popularity, recomputed by the popularity service
	Views      int          `gorm:"default:0" json:"views"`
	IsFeatured bool         `gorm:"default:false;index" json:"is_featured"`

	// Moderation flags, each toggled independently and idempotently.
	IsPinned   bool   `gorm:"default:false" json:"is_pinned"`
	IsLocked   bool   `gorm:"default:false" json:"is_locked"`
	IsHidden   bool   `gorm:"default:false;index" json:"is_hidden"`
	FlairText  string `gorm:"size:50" json:"flair_text"`
	FlairColor string `gorm:"size:20" json:"flair_color"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
