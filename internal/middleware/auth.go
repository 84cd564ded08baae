package middleware

import (
	"net/http"

	"compass/internal/db"
	"compass/internal/models"
	"compass/internal/services"

	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "current_user"

// LoadIdentity resolves the Authorization header against the identity
// provider and puts the local practitioner record in the context. A missing
// or rejected credential leaves the request anonymous; AuthRequired decides
// whether that is fatal.
func LoadIdentity(ids *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		identity, err := ids.Resolve(c.Request.Context(), header)
		if err != nil {
			c.Next()
			return
		}

		var practitioner models.Practitioner
		if err := db.DB.Where("id = ?", identity.ID).First(&practitioner).Error; err != nil {
			// First sight of this subject: mirror it locally.
			practitioner = models.Practitioner{
				ID:    identity.ID,
				Email: identity.Email,
				Role:  identity.Role,
			}
			if err := db.DB.Create(&practitioner).Error; err != nil {
				c.Next()
				return
			}
		} else if practitioner.Role != identity.Role {
			// The provider owns roles; keep the mirror current.
			db.DB.Model(&practitioner).Update("role", identity.Role)
			practitioner.Role = identity.Role
		}

		c.Set(CurrentUserKey, &practitioner)
		c.Next()
	}
}

// AuthRequired rejects anonymous requests.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "authentication required"},
			})
			return
		}
		c.Next()
	}
}

// ModeratorRequired gates moderation endpoints behind the moderator or
// admin role.
func ModeratorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CurrentUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "authentication required"},
			})
			return
		}
		user := u.(*models.Practitioner)
		if user.Role != "moderator" && user.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "moderator role required"},
			})
			return
		}
		c.Next()
	}
}
