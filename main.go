package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mikczynski/werble-backend/config"
	"github.com/mikczynski/werble-backend/database"
	"github.com/mikczynski/werble-backend/middleware"
	"github.com/mikczynski/werble-backend/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Seed lookup tables
	if err := database.SeedLookups(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed lookup tables")
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Rate limiting
	router.Use(middleware.RateLimit(120, 20))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, &log)

	// Start server
	log.Info().Str("port", cfg.Port).Msg("starting Werble API server")

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
