package services

import (
	"log"
	"sync"
	"time"

	"compass/internal/db"
	"compass/internal/models"
	"compass/internal/utils"

	"github.com/robfig/cron/v3"
)

// PopularityService recomputes post scores asynchronously so vote and
// moderation handlers never pay for ranking on the request path.
type PopularityService struct {
	queue   chan uint
	pending map[uint]bool
	mu      sync.Mutex
	cron    *cron.Cron
}

var (
	popularityService *PopularityService
	once              sync.Once
)

func GetPopularityService() *PopularityService {
	once.Do(func() {
		popularityService = &PopularityService{
			queue:   make(chan uint, 1000), // buffered so scheduling never blocks a handler
			pending: make(map[uint]bool),
			cron:    cron.New(),
		}
		go popularityService.worker()
	})
	return popularityService
}

// ScheduleUpdate queues a post for score recomputation, deduplicating
// requests already in flight.
func (s *PopularityService) ScheduleUpdate(postID uint) {
	s.mu.Lock()
	if s.pending[postID] {
		s.mu.Unlock()
		return
	}
	s.pending[postID] = true
	s.mu.Unlock()

	select {
	case s.queue <- postID:
	default:
		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
		log.Printf("popularity queue full, skipping post %d", postID)
	}
}

// StartNightlyRecompute schedules the 03:00 full recompute plus the
// recommendation rebuild.
func (s *PopularityService) StartNightlyRecompute() {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		log.Println("nightly popularity recompute starting")
		s.recomputeHotPosts()
		s.rebuildRecommendations()
		log.Println("nightly popularity recompute done")
	})
	if err != nil {
		log.Printf("failed to schedule nightly recompute: %v", err)
		return
	}
	s.cron.Start()
}

func (s *PopularityService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case postID := <-s.queue:
			batch = append(batch, postID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *PopularityService) processBatch(postIDs []uint) {
	for _, postID := range postIDs {
		s.updatePostScore(postID)

		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
	}
}

func (s *PopularityService) updatePostScore(postID uint) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		log.Printf("score update skipped, post %d not found", postID)
		return
	}

	newScore := utils.CalculatePopularity(post.CreatedAt, post.Views, post.IsPinned)

	if err := db.DB.Model(&post).UpdateColumn("score", int(newScore)).Error; err != nil {
		log.Printf("failed to update score for post %d: %v", postID, err)
	}
}

// recomputeHotPosts refreshes the last 7 days plus the current top 30,
// deduplicating as it goes.
func (s *PopularityService) recomputeHotPosts() {
	processed := make(map[uint]bool)
	count := 0

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	var recentPosts []models.Post
	db.DB.Where("created_at >= ?", sevenDaysAgo).Select("id").Find(&recentPosts)
	for _, p := range recentPosts {
		s.updatePostScore(p.ID)
		processed[p.ID] = true
		count++
	}

	var topPosts []models.Post
	db.DB.Order("score DESC").Limit(30).Select("id").Find(&topPosts)
	for _, p := range topPosts {
		if !processed[p.ID] {
			s.updatePostScore(p.ID)
			count++
		}
	}

	log.Printf("recomputed popularity for %d posts", count)
}

// rebuildRecommendations replaces every practitioner's picks with the
// current top posts they did not author.
func (s *PopularityService) rebuildRecommendations() {
	var practitioners []models.Practitioner
	if err := db.DB.Select("id").Find(&practitioners).Error; err != nil {
		log.Printf("recommendation rebuild aborted: %v", err)
		return
	}

	for _, p := range practitioners {
		var posts []models.Post
		db.DB.Where("author_id <> ? AND is_hidden = ?", p.ID, false).
			Order("score DESC, created_at DESC").
			Limit(5).
			Find(&posts)

		db.DB.Where("practitioner_id = ?", p.ID).Delete(&models.Recommendation{})
		for i, post := range posts {
			rec := models.Recommendation{
				PractitionerID: p.ID,
				PostID:         post.ID,
				Rank:           i + 1,
			}
			if err := db.DB.Create(&rec).Error; err != nil {
				log.Printf("failed to store recommendation for %s: %v", p.ID, err)
			}
		}
	}
}
