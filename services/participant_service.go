package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mikczynski/werble-backend/models"
)

// ParticipantRepository is the persistence contract for the participant
// lifecycle. Implemented by repositories.ParticipantRepository.
type ParticipantRepository interface {
	JoinIfAbsent(ctx context.Context, participant *models.EventParticipant) error
	FindByID(ctx context.Context, participantID uint) (*models.EventParticipant, error)
	FindActiveByEvent(ctx context.Context, eventID string) ([]models.EventParticipant, error)
	UpdateStatus(ctx context.Context, participantID uint, statusID uint) error
	StatusExists(ctx context.Context, statusID uint) (bool, error)
}

// ParticipantService owns the join/status-change rules for a single event.
// The creator row only ever comes into existence with its event; Join can
// never produce one.
type ParticipantService struct {
	participants ParticipantRepository
	events       EventRepository
	users        UserRepository
	log          *zerolog.Logger
}

func NewParticipantService(participants ParticipantRepository, events EventRepository, users UserRepository, log *zerolog.Logger) *ParticipantService {
	return &ParticipantService{
		participants: participants,
		events:       events,
		users:        users,
		log:          log,
	}
}

// Join creates an active participant row for (event, requester) or fails
// with ErrConflict when one already exists. The insert-if-absent runs
// transactionally so concurrent joins cannot duplicate the pair.
func (s *ParticipantService) Join(ctx context.Context, requesterID, eventID string) (*models.EventParticipant, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	participant := &models.EventParticipant{
		EventID:             eventID,
		UserID:              requesterID,
		IsCreator:           false,
		ParticipantStatusID: models.ParticipantStatusGoing,
	}
	if err := s.participants.JoinIfAbsent(ctx, participant); err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", eventID).Str("user_id", requesterID).Msg("user joined event")
	return participant, nil
}

// ChangeStatus updates a participation's status. Allowed for the
// participant themself and for the event's creator; anyone else gets
// ErrForbidden. The creator flag is never touched.
func (s *ParticipantService) ChangeStatus(ctx context.Context, requesterID string, participantID uint, statusID uint) (*models.EventParticipant, error) {
	participant, err := s.participants.FindByID(ctx, participantID)
	if err != nil {
		return nil, err
	}

	known, err := s.participants.StatusExists(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("%w: unknown participant status %d", models.ErrInvalidInput, statusID)
	}

	event, err := s.events.FindByID(ctx, participant.EventID)
	if err != nil {
		return nil, err
	}
	if requesterID != participant.UserID && requesterID != event.EventCreatorID {
		return nil, fmt.Errorf("%w: only the participant or the event creator may change the status", models.ErrForbidden)
	}

	if err := s.participants.UpdateStatus(ctx, participantID, statusID); err != nil {
		return nil, err
	}
	participant.ParticipantStatusID = statusID
	return participant, nil
}

// ParticipantsForEvent lists the active participants of a non-deleted event
// with their users resolved.
func (s *ParticipantService) ParticipantsForEvent(ctx context.Context, eventID string) ([]models.EventParticipant, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.participants.FindActiveByEvent(ctx, eventID)
}
