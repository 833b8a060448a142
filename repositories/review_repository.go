package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mikczynski/werble-backend/models"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.EventReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepository) FindByID(ctx context.Context, reviewID uint) (*models.EventReview, error) {
	var review models.EventReview
	err := r.db.WithContext(ctx).First(&review, "event_review_id = ?", reviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) FindByParticipantIDs(ctx context.Context, participantIDs []uint) ([]models.EventReview, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}
	var reviews []models.EventReview
	err := r.db.WithContext(ctx).
		Where("event_participant_id IN ?", participantIDs).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) Update(ctx context.Context, reviewID uint, content string, rating int) error {
	result := r.db.WithContext(ctx).Model(&models.EventReview{}).
		Where("event_review_id = ?", reviewID).
		Updates(map[string]interface{}{"content": content, "rating": rating})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *ReviewRepository) ExistsForParticipant(ctx context.Context, participantID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventReview{}).
		Where("event_participant_id = ?", participantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
