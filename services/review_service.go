package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikczynski/werble-backend/models"
	"github.com/mikczynski/werble-backend/utils"
)

// ReviewRepository is the persistence contract for reviews. Implemented by
// repositories.ReviewRepository.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.EventReview) error
	FindByID(ctx context.Context, reviewID uint) (*models.EventReview, error)
	FindByParticipantIDs(ctx context.Context, participantIDs []uint) ([]models.EventReview, error)
	Update(ctx context.Context, reviewID uint, content string, rating int) error
	ExistsForParticipant(ctx context.Context, participantID uint) (bool, error)
}

// EventReviewEntry is a review projected together with its author's
// participation. Participants without a review contribute nothing.
type EventReviewEntry struct {
	ReviewID      uint      `json:"event_review_id"`
	ParticipantID uint      `json:"event_participant_id"`
	Login         string    `json:"login"`
	Content       string    `json:"content"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReviewService resolves reviews reachable from an event through its active
// participants. The join path is what ties a review to an event; there is no
// direct foreign key.
type ReviewService struct {
	reviews      ReviewRepository
	participants ParticipantRepository
	events       EventRepository
	log          *zerolog.Logger
}

func NewReviewService(reviews ReviewRepository, participants ParticipantRepository, events EventRepository, log *zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviews:      reviews,
		participants: participants,
		events:       events,
		log:          log,
	}
}

// ReviewsForEvent walks event -> active participants -> review. Reviews
// whose participant was soft-deleted are unreachable by construction.
func (s *ReviewService) ReviewsForEvent(ctx context.Context, eventID string) ([]EventReviewEntry, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	participants, err := s.participants.FindActiveByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	participantIDs := make([]uint, 0, len(participants))
	logins := make(map[uint]string, len(participants))
	for _, participant := range participants {
		participantIDs = append(participantIDs, participant.ID)
		logins[participant.ID] = participant.User.Login
	}

	reviews, err := s.reviews.FindByParticipantIDs(ctx, participantIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]EventReviewEntry, 0, len(reviews))
	for _, review := range reviews {
		entries = append(entries, EventReviewEntry{
			ReviewID:      review.ID,
			ParticipantID: review.EventParticipantID,
			Login:         logins[review.EventParticipantID],
			Content:       review.Content,
			Rating:        review.Rating,
			CreatedAt:     review.CreatedAt,
		})
	}
	return entries, nil
}

// CreateReview lets a participant review their own participation exactly
// once. The store backs the uniqueness with an index on the participant id.
func (s *ReviewService) CreateReview(ctx context.Context, requesterID string, participantID uint, content string, rating int) (*models.EventReview, error) {
	if err := validateReviewInput(content, rating); err != nil {
		return nil, err
	}

	participant, err := s.participants.FindByID(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if participant.UserID != requesterID {
		return nil, fmt.Errorf("%w: participation belongs to another user", models.ErrForbidden)
	}

	exists, err := s.reviews.ExistsForParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: participation already has a review", models.ErrConflict)
	}

	review := &models.EventReview{
		EventParticipantID: participantID,
		Content:            content,
		Rating:             rating,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info().Uint("participant_id", participantID).Uint("review_id", review.ID).Msg("review created")
	return review, nil
}

// EditReview is review-author-only.
func (s *ReviewService) EditReview(ctx context.Context, requesterID string, reviewID uint, content string, rating int) (*models.EventReview, error) {
	if err := validateReviewInput(content, rating); err != nil {
		return nil, err
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	participant, err := s.participants.FindByID(ctx, review.EventParticipantID)
	if err != nil {
		return nil, err
	}
	if participant.UserID != requesterID {
		return nil, fmt.Errorf("%w: only the review author may edit it", models.ErrForbidden)
	}

	if err := s.reviews.Update(ctx, reviewID, content, rating); err != nil {
		return nil, err
	}
	review.Content = content
	review.Rating = rating
	return review, nil
}

func validateReviewInput(content string, rating int) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: review content must not be empty", models.ErrInvalidInput)
	}
	if !utils.IsValidRating(rating) {
		return fmt.Errorf("%w: rating must be between 1 and 5", models.ErrInvalidInput)
	}
	return nil
}
