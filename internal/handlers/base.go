package handlers

import (
	"log"

	"compass/internal/middleware"
	"compass/internal/models"

	"github.com/gin-gonic/gin"
)

// Cache keys for read-side views invalidated by write handlers.
const (
	cacheKeyHomepage    = "home:aggregate:anon"
	cacheKeySuggestions = "suggestions:ranked"
)

// currentPractitioner returns the resolved caller, or nil for anonymous
// requests.
func currentPractitioner(c *gin.Context) *models.Practitioner {
	u, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		return nil
	}
	return u.(*models.Practitioner)
}

// fail logs the server-side context and sends the minimal client envelope.
// Internal detail never crosses the boundary.
func fail(c *gin.Context, status int, message string, err error) {
	requestID, _ := c.Get(middleware.RequestIDKey)
	caller := "anonymous"
	if user := currentPractitioner(c); user != nil {
		caller = user.ID
	}
	log.Printf("[%v] %s %s caller=%s status=%d: %s (%v)",
		requestID, c.Request.Method, c.Request.URL.Path, caller, status, message, err)

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"message": message},
	})
}
