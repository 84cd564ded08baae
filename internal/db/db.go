package db

import (
	"log"

	"compass/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Migrate runs the schema migration and seeds against the current DB handle.
// Split from Init so tests can run it against an in-memory database.
func Migrate() error {
	err := DB.AutoMigrate(
		&models.Practitioner{},
		&models.Suggestion{},
		&models.SuggestionVote{},
		&models.Post{},
		&models.Notification{},
		&models.LayoutSection{},
		&models.PointLog{},
		&models.Recommendation{},
	)
	if err != nil {
		return err
	}

	seedLayout()
	return nil
}

func seedLayout() {
	var count int64
	DB.Model(&models.LayoutSection{}).Count(&count)
	if count > 0 {
		return
	}

	sections := []models.LayoutSection{
		{Key: "featured", Title: "Featured review", Position: 1},
		{Key: "recent", Title: "Latest reviews", Position: 2},
		{Key: "popular", Title: "Popular this week", Position: 3},
		{Key: "suggestions", Title: "Community suggestions", Position: 4},
		{Key: "recommendations", Title: "Picked for you", Position: 5},
	}

	for _, section := range sections {
		if err := DB.Create(&section).Error; err != nil {
			log.Printf("Failed to seed layout section %s: %v", section.Key, err)
		}
	}
	log.Println("Homepage layout sections seeded")
}
