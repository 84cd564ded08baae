package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"compass/internal/db"
	"compass/internal/models"
	"compass/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	homeListSize      = 10
	homeBranchTimeout = 3 * time.Second
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// featuredView carries the featured post together with its rendered body,
// so the SPA never parses markdown.
type featuredView struct {
	models.Post
	ContentHTML string `json:"content_html"`
}

// Aggregate fans out the homepage queries concurrently and joins them all
// before composing the response. A branch that fails or times out
// contributes its typed fallback; siblings are never aborted. Optional
// branches (profile, recommendations, unread count) are only dispatched for
// authenticated callers. The composite shape is identical regardless of how
// many branches failed.
func (h *HomeHandler) Aggregate(c *gin.Context) {
	user := currentPractitioner(c)

	if user == nil {
		if cached := utils.GetCache().Get(cacheKeyHomepage); cached != nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	// Fallback values; branches overwrite on success only.
	layout := []models.LayoutSection{}
	var featured *featuredView
	recent := []models.Post{}
	popular := []models.Post{}
	suggestions := []models.Suggestion{}
	recommendations := []models.Recommendation{}
	var profile *models.Practitioner
	var notificationCount int64

	var wg sync.WaitGroup
	launch := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(c.Request.Context(), homeBranchTimeout)
			defer cancel()
			if err := fn(ctx); err != nil {
				log.Printf("homepage branch %s degraded to fallback: %v", name, err)
			}
		}()
	}

	launch("layout", func(ctx context.Context) error {
		var rows []models.LayoutSection
		if err := db.DB.WithContext(ctx).
			Where("visible = ?", true).
			Order("position ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		layout = rows
		return nil
	})

	launch("featured", func(ctx context.Context) error {
		var post models.Post
		err := db.DB.WithContext(ctx).Preload("Author").
			Where("is_featured = ? AND is_hidden = ?", true, false).
			Order("created_at DESC").
			First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing featured right now
		}
		if err != nil {
			return err
		}
		featured = &featuredView{Post: post, ContentHTML: utils.RenderMarkdown(post.Content)}
		return nil
	})

	launch("recent", func(ctx context.Context) error {
		var rows []models.Post
		if err := db.DB.WithContext(ctx).Preload("Author").
			Where("is_hidden = ?", false).
			Order("created_at DESC").
			Limit(homeListSize).
			Find(&rows).Error; err != nil {
			return err
		}
		recent = rows
		return nil
	})

	launch("popular", func(ctx context.Context) error {
		var rows []models.Post
		if err := db.DB.WithContext(ctx).Preload("Author").
			Where("is_hidden = ?", false).
			Order("score DESC, created_at DESC").
			Limit(homeListSize).
			Find(&rows).Error; err != nil {
			return err
		}
		popular = rows
		return nil
	})

	launch("suggestions", func(ctx context.Context) error {
		var rows []models.Suggestion
		if err := db.DB.WithContext(ctx).
			Order("upvotes DESC, created_at DESC").
			Limit(homeListSize).
			Find(&rows).Error; err != nil {
			return err
		}
		suggestions = rows
		return nil
	})

	if user != nil {
		launch("recommendations", func(ctx context.Context) error {
			var rows []models.Recommendation
			if err := db.DB.WithContext(ctx).Preload("Post").
				Where("practitioner_id = ?", user.ID).
				Order("rank ASC").
				Find(&rows).Error; err != nil {
				return err
			}
			recommendations = rows
			return nil
		})

		launch("profile", func(ctx context.Context) error {
			var p models.Practitioner
			if err := db.DB.WithContext(ctx).First(&p, "id = ?", user.ID).Error; err != nil {
				return err
			}
			profile = &p
			return nil
		})

		launch("unread", func(ctx context.Context) error {
			var count int64
			if err := db.DB.WithContext(ctx).Model(&models.Notification{}).
				Where("practitioner_id = ? AND is_read = ?", user.ID, false).
				Count(&count).Error; err != nil {
				return err
			}
			notificationCount = count
			return nil
		})
	}

	wg.Wait()

	resp := gin.H{
		"layout":            layout,
		"featured":          featured,
		"recent":            recent,
		"popular":           popular,
		"suggestions":       suggestions,
		"recommendations":   recommendations,
		"userProfile":       profile,
		"notificationCount": notificationCount,
	}

	if user == nil {
		utils.GetCache().Set(cacheKeyHomepage, resp, 1*time.Minute)
	}
	c.JSON(http.StatusOK, resp)
}
