package main

import (
	"log"

	"compass/internal/config"
	"compass/internal/db"
	"compass/internal/router"
	"compass/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading config from environment")
	}

	cfg := config.Load()

	db.Init(cfg.DatabaseURL)

	// Boot the async popularity worker and its nightly recompute.
	services.GetPopularityService().StartNightlyRecompute()

	r := gin.Default()
	router.RegisterRoutes(r, cfg)

	log.Printf("Compass API starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
