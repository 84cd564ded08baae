package models

import (
	"time"
)

// LayoutSection drives the ordering and visibility of homepage blocks.
// Rows are seeded at first boot and edited from the admin console.
type LayoutSection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:40;not null;uniqueIndex" json:"key"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Position  int       `gorm:"not null" json:"position"`
	Visible   bool      `gorm:"default:true;not null" json:"visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
