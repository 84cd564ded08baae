package models

import (
	"time"
)

type Practitioner struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"` // subject id issued by the identity provider
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	Role        string    `gorm:"size:20;default:'practitioner';not null" json:"role"` // practitioner, moderator, admin
	Points      int       `gorm:"default:0" json:"points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
