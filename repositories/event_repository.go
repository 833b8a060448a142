package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mikczynski/werble-backend/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateWithCreator inserts the event and its creator participant row in a
// single transaction so an event can never exist without its creator.
func (r *EventRepository) CreateWithCreator(ctx context.Context, event *models.Event, creator *models.EventParticipant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		creator.EventID = event.ID
		if err := tx.Create(creator).Error; err != nil {
			return fmt.Errorf("failed to create creator participant: %w", err)
		}
		return nil
	})
}

func (r *EventRepository) FindByID(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, "event_id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindActive returns every non-deleted event; there is no spatial index, the
// caller computes distances over the full set.
func (r *EventRepository) FindActive(ctx context.Context, includeParticipants bool) ([]models.Event, error) {
	var events []models.Event
	query := r.db.WithContext(ctx)
	if includeParticipants {
		query = query.Preload("Participants")
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) FindByCreator(ctx context.Context, creatorID string, includeParticipants bool) ([]models.Event, error) {
	var events []models.Event
	query := r.db.WithContext(ctx).Where("event_creator_id = ?", creatorID)
	if includeParticipants {
		query = query.Preload("Participants")
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) FindByParticipant(ctx context.Context, userID string, includeParticipants bool) ([]models.Event, error) {
	var events []models.Event
	query := r.db.WithContext(ctx).
		Joins("JOIN event_participants ep ON ep.event_id = events.event_id AND ep.user_id = ? AND ep.deleted_at IS NULL", userID)
	if includeParticipants {
		query = query.Preload("Participants")
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, eventID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Event{}).
		Where("event_id = ?", eventID).
		Updates(fields).Error
}

// SoftDeleteCascade soft-deletes the event, its active participants and those
// participants' reviews atomically. A half-deleted event is never visible.
func (r *EventRepository) SoftDeleteCascade(ctx context.Context, eventID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participantIDs []uint
		err := tx.Model(&models.EventParticipant{}).
			Where("event_id = ?", eventID).
			Pluck("event_participant_id", &participantIDs).Error
		if err != nil {
			return fmt.Errorf("failed to collect participants: %w", err)
		}

		if len(participantIDs) > 0 {
			if err := tx.Where("event_participant_id IN ?", participantIDs).Delete(&models.EventReview{}).Error; err != nil {
				return fmt.Errorf("failed to delete reviews: %w", err)
			}
			if err := tx.Where("event_id = ?", eventID).Delete(&models.EventParticipant{}).Error; err != nil {
				return fmt.Errorf("failed to delete participants: %w", err)
			}
		}

		result := tx.Where("event_id = ?", eventID).Delete(&models.Event{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete event: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
