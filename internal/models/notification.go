package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeModeration NotificationType = "moderation"
	NotificationTypeSystem     NotificationType = "system"
)

type Notification struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	PractitionerID string           `gorm:"size:64;not null;index" json:"practitioner_id"` // receiver
	ActorID        *string          `gorm:"size:64;index" json:"actor_id"`                 // sender, nil for system
	Type           NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message        string           `gorm:"type:text" json:"message"`
	IsRead         bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt      time.Time        `json:"created_at"`
}
