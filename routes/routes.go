package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mikczynski/werble-backend/config"
	"github.com/mikczynski/werble-backend/controllers"
	"github.com/mikczynski/werble-backend/middleware"
	"github.com/mikczynski/werble-backend/repositories"
	"github.com/mikczynski/werble-backend/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zerolog.Logger) {
	// Repositories
	eventRepo := repositories.NewEventRepository(db)
	participantRepo := repositories.NewParticipantRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	emailService := services.NewEmailService(cfg, log)
	eventService := services.NewEventService(eventRepo, participantRepo, userRepo, emailService, log)
	participantService := services.NewParticipantService(participantRepo, eventRepo, userRepo, log)
	reviewService := services.NewReviewService(reviewRepo, participantRepo, eventRepo, log)
	profileService := services.NewProfileService(userRepo, log)

	// Controllers
	eventController := controllers.NewEventController(eventService)
	participantController := controllers.NewParticipantController(participantService)
	reviewController := controllers.NewReviewController(reviewService)
	profileController := controllers.NewProfileController(profileService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		events := protected.Group("/events")
		{
			events.GET("/local", eventController.GetLocalEvents)
			events.GET("/owned", eventController.GetOwnedEvents)
			events.GET("/participating", eventController.GetParticipatingEvents)
			events.POST("/", eventController.CreateEvent)
			events.GET("/:id", eventController.GetEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/join", participantController.JoinEvent)
			events.GET("/:id/participants", participantController.GetEventParticipants)
			events.GET("/:id/reviews", reviewController.GetEventReviews)
		}

		participants := protected.Group("/participants")
		{
			participants.PUT("/:id/status", participantController.ChangeStatus)
		}

		reviews := protected.Group("/reviews")
		{
			reviews.POST("/", reviewController.CreateReview)
			reviews.PUT("/:id", reviewController.EditReview)
		}

		users := protected.Group("/users")
		{
			users.PUT("/position", profileController.UpdatePosition)
		}
	}
}

// SetupCORS configures cross-origin access for browser clients
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
