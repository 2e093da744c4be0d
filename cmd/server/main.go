package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskhive/internal/config"
	"github.com/yukikurage/taskhive/internal/database"
	"github.com/yukikurage/taskhive/internal/router"
	"github.com/yukikurage/taskhive/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := router.NewSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}

	opts := router.Options{SessionStore: store}

	// Initialize AI service
	if cfg.OpenAIAPIKey != "" {
		opts.Suggester = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Println("OPENAI_API_KEY not set, task suggestions disabled")
	}

	if cfg.MoveRequiresAccess {
		log.Println("Task moves require board access")
	}

	r := router.NewRouter(cfg, db, opts)

	// Start server
	log.Printf("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
