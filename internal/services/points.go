package services

import (
	"compass/internal/db"
	"compass/internal/models"

	"gorm.io/gorm"
)

// Point actions
const (
	ActionSuggestionCreate  = "suggestion submitted"
	ActionSuggestionUpvoted = "suggestion upvoted"
)

// Point amounts
const (
	PointsSuggestionCreate  = 1
	PointsSuggestionUpvoted = 1
)

// AddPoints records a point ledger entry and updates the balance in one
// transaction.
func AddPoints(practitionerID string, amount int, action string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.PointLog{
			PractitionerID: practitionerID,
			Amount:         amount,
			Action:         action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Practitioner{}).
			Where("id = ?", practitionerID).
			UpdateColumn("points", gorm.Expr("points + ?", amount)).
			Error; err != nil {
			return err
		}

		return nil
	})
}

// AddPointsAsync awards points off the request path.
func AddPointsAsync(practitionerID string, amount int, action string) {
	go func() {
		_ = AddPoints(practitionerID, amount, action)
	}()
}
