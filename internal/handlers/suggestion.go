package handlers

import (
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"compass/internal/db"
	"compass/internal/models"
	"compass/internal/services"
	"compass/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	titleMinLen       = 5
	titleMaxLen       = 200
	descriptionMaxLen = 1000
)

type SuggestionHandler struct {
	limiter *services.RateLimiter
}

func NewSuggestionHandler(limiter *services.RateLimiter) *SuggestionHandler {
	return &SuggestionHandler{limiter: limiter}
}

type createSuggestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create accepts a new proposal. Preconditions run in order and each
// short-circuits: auth, rate limit, title bounds, description bound. The
// rate limiter is consulted before validation, so a rejected body still
// consumes a slot.
func (h *SuggestionHandler) Create(c *gin.Context) {
	user := currentPractitioner(c)
	if user == nil {
		fail(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	if !h.limiter.Allow(user.ID) {
		retryAfter := h.limiter.RetryAfter(user.ID)
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		fail(c, http.StatusTooManyRequests, "rate limit exceeded, try again later", nil)
		return
	}

	var req createSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	titleLen := utf8.RuneCountInString(req.Title)
	if titleLen < titleMinLen || titleLen > titleMaxLen {
		fail(c, http.StatusBadRequest, "title must be between 5 and 200 characters", nil)
		return
	}
	if utf8.RuneCountInString(req.Description) > descriptionMaxLen {
		fail(c, http.StatusBadRequest, "description must be at most 1000 characters", nil)
		return
	}

	suggestion := models.Suggestion{
		Title:       req.Title,
		Description: utils.SanitizePlain(req.Description),
		SubmittedBy: user.ID,
		Status:      models.SuggestionStatusPending,
		Upvotes:     0,
	}
	if err := db.DB.Create(&suggestion).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to save suggestion", err)
		return
	}

	utils.GetCache().Delete(cacheKeyHomepage)
	utils.GetCache().Delete(cacheKeySuggestions)
	services.AddPointsAsync(user.ID, services.PointsSuggestionCreate, services.ActionSuggestionCreate)

	c.JSON(http.StatusCreated, gin.H{
		"data":    suggestion,
		"message": "suggestion submitted for review",
	})
}

// List returns suggestions ranked by vote count, then recency. The SPA
// homepage invokes this as its suggestions feed.
func (h *SuggestionHandler) List(c *gin.Context) {
	limit := utils.StringToInt(c.Query("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if limit == 50 {
		if cached := utils.GetCache().Get(cacheKeySuggestions); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	var suggestions []models.Suggestion
	if err := db.DB.Order("upvotes DESC, created_at DESC").Limit(limit).Find(&suggestions).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to load suggestions", err)
		return
	}

	resp := gin.H{"data": suggestions}
	if limit == 50 {
		utils.GetCache().Set(cacheKeySuggestions, resp, 1*time.Minute)
	}
	c.JSON(http.StatusOK, resp)
}
