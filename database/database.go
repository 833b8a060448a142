package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mikczynski/werble-backend/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.EventType{},
		&models.ParticipantStatus{},
		&models.Event{},
		&models.EventParticipant{},
		&models.EventReview{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// One review per participation. Reviews are only soft-deleted together
	// with their participant, so the index never blocks a legitimate insert.
	if err := db.Exec("ALTER TABLE event_reviews ADD CONSTRAINT uk_event_reviews_participant UNIQUE (event_participant_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add unique constraint for event_reviews: %v\n", err)
	}

	return nil
}

// SeedLookups populates the status and type lookup tables on first run.
func SeedLookups(db *gorm.DB) error {
	var statusCount int64
	db.Model(&models.ParticipantStatus{}).Count(&statusCount)

	if statusCount == 0 {
		statuses := []models.ParticipantStatus{
			{ID: models.ParticipantStatusGoing, Name: "going"},
			{ID: models.ParticipantStatusInterested, Name: "interested"},
			{ID: models.ParticipantStatusDeclined, Name: "declined"},
		}
		for _, status := range statuses {
			if err := db.Create(&status).Error; err != nil {
				return fmt.Errorf("failed to seed participant status %q: %w", status.Name, err)
			}
		}
	}

	var typeCount int64
	db.Model(&models.EventType{}).Count(&typeCount)

	if typeCount == 0 {
		types := []models.EventType{
			{ID: 1, Name: "meetup"},
			{ID: 2, Name: "party"},
			{ID: 3, Name: "sport"},
			{ID: 4, Name: "culture"},
		}
		for _, eventType := range types {
			if err := db.Create(&eventType).Error; err != nil {
				return fmt.Errorf("failed to seed event type %q: %w", eventType.Name, err)
			}
		}
	}

	return nil
}
