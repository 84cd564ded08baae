package handlers

import (
	"net/http"

	"compass/internal/db"
	"compass/internal/models"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := currentPractitioner(c)

	var notifications []models.Notification
	if err := db.DB.Where("practitioner_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load notifications", err)
		return
	}

	var unread int64
	db.DB.Model(&models.Notification{}).
		Where("practitioner_id = ? AND is_read = ?", user.ID, false).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"data":         notifications,
		"unread_count": unread,
	})
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := currentPractitioner(c)

	if err := db.DB.Model(&models.Notification{}).
		Where("practitioner_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update notifications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "all notifications marked read"})
}
