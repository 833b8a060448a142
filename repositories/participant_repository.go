package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mikczynski/werble-backend/models"
)

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// JoinIfAbsent inserts the participant row unless an active one already
// exists for the (event, user) pair. The check and the insert run in one
// transaction with a row lock so concurrent joins cannot produce duplicates.
func (r *ParticipantRepository) JoinIfAbsent(ctx context.Context, participant *models.EventParticipant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.EventParticipant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ? AND user_id = ?", participant.EventID, participant.UserID).
			First(&existing).Error
		if err == nil {
			return models.ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing participation: %w", err)
		}
		return tx.Create(participant).Error
	})
}

func (r *ParticipantRepository) FindByID(ctx context.Context, participantID uint) (*models.EventParticipant, error) {
	var participant models.EventParticipant
	err := r.db.WithContext(ctx).First(&participant, "event_participant_id = ?", participantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *ParticipantRepository) FindActiveByEvent(ctx context.Context, eventID string) ([]models.EventParticipant, error) {
	var participants []models.EventParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *ParticipantRepository) UpdateStatus(ctx context.Context, participantID uint, statusID uint) error {
	return r.db.WithContext(ctx).Model(&models.EventParticipant{}).
		Where("event_participant_id = ?", participantID).
		Update("participant_status_id", statusID).Error
}

func (r *ParticipantRepository) StatusExists(ctx context.Context, statusID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ParticipantStatus{}).
		Where("participant_status_id = ?", statusID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
