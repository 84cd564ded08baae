package models

import (
	"time"
)

type PointLog struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	PractitionerID string       `gorm:"size:64;not null;index" json:"practitioner_id"`
	Practitioner   Practitioner `gorm:"foreignKey:PractitionerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Amount         int          `gorm:"not null" json:"amount"` // positive credit, negative debit
	Action         string       `gorm:"size:100;not null" json:"action"`
	CreatedAt      time.Time    `json:"created_at"`
}
