package handlers

import (
	"errors"
	"log"
	"net/http"

	"compass/internal/db"
	"compass/internal/middleware"
	"compass/internal/models"
	"compass/internal/services"
	"compass/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ModerationHandler struct{}

func NewModerationHandler() *ModerationHandler {
	return &ModerationHandler{}
}

type toggleRequest struct {
	PostID     uint   `json:"post_id"`
	ActionType string `json:"action_type"`
	Reason     string `json:"reason"`
	FlairText  string `json:"flair_text"`
	FlairColor string `json:"flair_color"`
}

// Toggle applies one idempotent moderation mutation to a post. The mutated
// record is not returned; the SPA refetches or patches optimistically.
func (h *ModerationHandler) Toggle(c *gin.Context) {
	moderator := currentPractitioner(c)

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var post models.Post
	if err := db.DB.First(&post, req.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "post not found", err)
			return
		}
		fail(c, http.StatusInternalServerError, "database error", err)
		return
	}

	updates := map[string]interface{}{}
	var message string
	notifyAuthor := ""

	switch req.ActionType {
	case "pin":
		updates["is_pinned"] = true
		message = "post pinned"
	case "unpin":
		updates["is_pinned"] = false
		message = "post unpinned"
	case "lock":
		updates["is_locked"] = true
		message = "post locked"
	case "unlock":
		updates["is_locked"] = false
		message = "post unlocked"
	case "hide":
		updates["is_hidden"] = true
		message = "post hidden"
		notifyAuthor = "Your post \"" + post.Title + "\" was hidden by a moderator."
	case "flair":
		if req.FlairText == "" {
			// Observed behavior: flair without text is a no-op, not an error.
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "no flair text provided, nothing changed"})
			return
		}
		updates["flair_text"] = req.FlairText
		updates["flair_color"] = req.FlairColor
		message = "flair updated"
	default:
		fail(c, http.StatusBadRequest, "unknown action_type", nil)
		return
	}

	if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "database error", err)
		return
	}

	requestID, _ := c.Get(middleware.RequestIDKey)
	log.Printf("[%v] moderation %s on post %d by %s reason=%q",
		requestID, req.ActionType, post.ID, moderator.ID, req.Reason)

	if notifyAuthor != "" {
		notification := models.Notification{
			PractitionerID: post.AuthorID,
			ActorID:        &moderator.ID,
			Type:           models.NotificationTypeModeration,
			Message:        notifyAuthor,
		}
		db.DB.Create(&notification)
	}

	if req.ActionType == "pin" || req.ActionType == "unpin" {
		services.GetPopularityService().ScheduleUpdate(post.ID)
	}
	utils.GetCache().Delete(cacheKeyHomepage)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
