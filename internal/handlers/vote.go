package handlers

import (
	"errors"
	"net/http"

	"compass/internal/db"
	"compass/internal/models"
	"compass/internal/services"
	"compass/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ActionUpvote     = "upvote"
	ActionRemoveVote = "remove_vote"
)

var (
	errAlreadyVoted = errors.New("already voted")
	errVoteMissing  = errors.New("no vote to remove")
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	SuggestionID uint   `json:"suggestion_id"`
	Action       string `json:"action"`
}

// Cast applies one transition of the {no-vote <-> voted} state machine for
// the (suggestion, caller) pair. The vote row and the upvotes column move
// in one transaction, with the counter mutated by an atomic expression, so
// the returned count is exact even under concurrent votes on the same
// suggestion.
func (h *VoteHandler) Cast(c *gin.Context) {
	user := currentPractitioner(c)
	if user == nil {
		fail(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Action != ActionUpvote && req.Action != ActionRemoveVote {
		fail(c, http.StatusBadRequest, "action must be upvote or remove_vote", nil)
		return
	}

	var suggestion models.Suggestion
	if err := db.DB.First(&suggestion, req.SuggestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "suggestion not found", err)
			return
		}
		fail(c, http.StatusInternalServerError, "database error", err)
		return
	}

	var newCount int
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.SuggestionVote
		lookupErr := tx.Where("suggestion_id = ? AND practitioner_id = ?", suggestion.ID, user.ID).
			First(&existing).Error

		switch req.Action {
		case ActionUpvote:
			if lookupErr == nil {
				return errAlreadyVoted
			}
			if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return lookupErr
			}
			vote := models.SuggestionVote{
				SuggestionID:   suggestion.ID,
				PractitionerID: user.ID,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Suggestion{}).Where("id = ?", suggestion.ID).
				UpdateColumn("upvotes", gorm.Expr("upvotes + ?", 1)).Error; err != nil {
				return err
			}

		case ActionRemoveVote:
			if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return errVoteMissing
			}
			if lookupErr != nil {
				return lookupErr
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Suggestion{}).Where("id = ?", suggestion.ID).
				UpdateColumn("upvotes", gorm.Expr("upvotes - ?", 1)).Error; err != nil {
				return err
			}
		}

		// Read the count back inside the transaction so the response
		// reflects exactly what was committed.
		var updated models.Suggestion
		if err := tx.Select("upvotes").First(&updated, suggestion.ID).Error; err != nil {
			return err
		}
		newCount = updated.Upvotes
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, errAlreadyVoted):
			fail(c, http.StatusConflict, "you have already voted for this suggestion", nil)
		case errors.Is(err, errVoteMissing):
			fail(c, http.StatusConflict, "no vote to remove for this suggestion", nil)
		default:
			fail(c, http.StatusInternalServerError, "database error", err)
		}
		return
	}

	// Read-side views of the collection are stale now.
	utils.GetCache().Delete(cacheKeyHomepage)
	utils.GetCache().Delete(cacheKeySuggestions)

	if req.Action == ActionUpvote && suggestion.SubmittedBy != user.ID {
		services.AddPointsAsync(suggestion.SubmittedBy, services.PointsSuggestionUpvoted, services.ActionSuggestionUpvoted)
	}

	message := "vote recorded"
	if req.Action == ActionRemoveVote {
		message = "vote removed"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        message,
		"suggestion_id":  suggestion.ID,
		"action":         req.Action,
		"new_vote_count": newCount,
		"user_has_voted": req.Action == ActionUpvote,
	})
}
