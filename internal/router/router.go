package router

import (
	"net/http"

	"compass/internal/config"
	"compass/internal/handlers"
	"compass/internal/middleware"
	"compass/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": gin.H{"message": "method not allowed"}})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "not found"}})
	})

	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg))

	identitySvc := services.NewIdentityService(cfg.AuthBaseURL)
	r.Use(middleware.LoadIdentity(identitySvc))

	limiter := services.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)

	homeHandler := handlers.NewHomeHandler()
	suggestionHandler := handlers.NewSuggestionHandler(limiter)
	voteHandler := handlers.NewVoteHandler()
	moderationHandler := handlers.NewModerationHandler()
	notificationHandler := handlers.NewNotificationHandler()

	api := r.Group("/api")

	// Public routes
	api.GET("/homepage", homeHandler.Aggregate)
	api.GET("/suggestions", suggestionHandler.List)

	// Authenticated routes
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/suggestions", suggestionHandler.Create)
		authorized.POST("/suggestions/vote", voteHandler.Cast)
		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
	}

	// Moderator routes
	moderation := api.Group("/moderation")
	moderation.Use(middleware.AuthRequired(), middleware.ModeratorRequired())
	{
		moderation.POST("/toggle", moderationHandler.Toggle)
	}
}
