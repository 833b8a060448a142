package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mikczynski/werble-backend/models"
)

// Events beyond this radius are filtered out when the caller does not ask
// for a specific one.
const defaultLocalRadiusKm = 10

// EventRepository is the persistence contract the discovery service needs.
// Implemented by repositories.EventRepository; tests substitute fakes.
type EventRepository interface {
	CreateWithCreator(ctx context.Context, event *models.Event, creator *models.EventParticipant) error
	FindByID(ctx context.Context, eventID string) (*models.Event, error)
	FindActive(ctx context.Context, includeParticipants bool) ([]models.Event, error)
	FindByCreator(ctx context.Context, creatorID string, includeParticipants bool) ([]models.Event, error)
	FindByParticipant(ctx context.Context, userID string, includeParticipants bool) ([]models.Event, error)
	Update(ctx context.Context, eventID string, fields map[string]interface{}) error
	SoftDeleteCascade(ctx context.Context, eventID string) error
}

// UserRepository resolves requester identities and owner logins.
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByIDs(ctx context.Context, userIDs []string) (map[string]models.User, error)
	UpdatePosition(ctx context.Context, userID string, latitude, longitude float64) error
}

// CancellationNotifier tells participants their event is gone. Best effort:
// delivery failures are logged, never surfaced.
type CancellationNotifier interface {
	NotifyEventCancelled(event *models.Event, recipients []models.User) error
}

// EnrichedEvent is an event annotated with request-scoped derived fields.
// Distance and owner login are computed per request and never persisted.
type EnrichedEvent struct {
	models.Event
	Distance   string `json:"distance"`
	OwnerLogin string `json:"owner_login"`

	distanceKm float64
}

type CreateEventInput struct {
	Name          string
	Description   string
	StartDatetime time.Time
	EndDatetime   time.Time
	Latitude      float64
	Longitude     float64
	EventTypeID   uint
	Location      string
	ZipCode       string
	StreetName    string
	HouseNumber   string
}

// EditEventInput carries a partial update; nil fields are left untouched.
type EditEventInput struct {
	Name          *string
	Description   *string
	StartDatetime *time.Time
	EndDatetime   *time.Time
	Status        *models.EventStatus
	Latitude      *float64
	Longitude     *float64
	EventTypeID   *uint
	Location      *string
	ZipCode       *string
	StreetName    *string
	HouseNumber   *string
}

type EventService struct {
	events       EventRepository
	participants ParticipantRepository
	users        UserRepository
	notifier     CancellationNotifier
	log          *zerolog.Logger
}

func NewEventService(events EventRepository, participants ParticipantRepository, users UserRepository, notifier CancellationNotifier, log *zerolog.Logger) *EventService {
	return &EventService{
		events:       events,
		participants: participants,
		users:        users,
		notifier:     notifier,
		log:          log,
	}
}

// LocalEvents returns every non-deleted event strictly closer to the
// requester than maxDistanceKm (default radius when <= 0). Distances are
// computed for all candidates before filtering; this is a full scan.
func (s *EventService) LocalEvents(ctx context.Context, requesterID string, maxDistanceKm float64, includeParticipants bool) ([]EnrichedEvent, error) {
	requester, err := s.requesterWithPosition(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if maxDistanceKm <= 0 {
		maxDistanceKm = defaultLocalRadiusKm
	}

	events, err := s.events.FindActive(ctx, includeParticipants)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrich(ctx, events, requester)
	if err != nil {
		return nil, err
	}

	local := make([]EnrichedEvent, 0, len(enriched))
	for _, event := range enriched {
		if event.distanceKm < maxDistanceKm {
			local = append(local, event)
		}
	}
	return local, nil
}

// OwnedEvents returns the events the requester created.
func (s *EventService) OwnedEvents(ctx context.Context, requesterID string, includeParticipants bool) ([]EnrichedEvent, error) {
	requester, err := s.requesterWithPosition(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	events, err := s.events.FindByCreator(ctx, requesterID, includeParticipants)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, events, requester)
}

// ParticipatingEvents returns the events where the requester holds any
// active participant row, creator or not.
func (s *EventService) ParticipatingEvents(ctx context.Context, requesterID string, includeParticipants bool) ([]EnrichedEvent, error) {
	requester, err := s.requesterWithPosition(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	events, err := s.events.FindByParticipant(ctx, requesterID, includeParticipants)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, events, requester)
}

// SingleEvent returns one enriched event or ErrNotFound when it is missing
// or soft-deleted. Unlike collection queries a missing coordinate on the
// event surfaces as ErrInvalidInput here.
func (s *EventService) SingleEvent(ctx context.Context, eventID, requesterID string) (*EnrichedEvent, error) {
	requester, err := s.requesterWithPosition(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, event.EventCreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve event owner: %w", err)
	}

	enriched, err := s.enrichOne(*event, requester, owner.Login)
	if err != nil {
		return nil, err
	}
	return &enriched, nil
}

// CreateEvent inserts the event and its creator participant atomically. The
// creator row is the only path to IsCreator = true.
func (s *EventService) CreateEvent(ctx context.Context, requesterID string, input CreateEventInput) (*models.Event, error) {
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if !validCoordinate(&input.Latitude, &input.Longitude) {
		return nil, fmt.Errorf("%w: event coordinate out of range", models.ErrInvalidInput)
	}
	if input.EndDatetime.Before(input.StartDatetime) {
		return nil, fmt.Errorf("%w: event ends before it starts", models.ErrInvalidInput)
	}

	eventTypeID := input.EventTypeID
	if eventTypeID == 0 {
		eventTypeID = 1
	}

	lat, lng := input.Latitude, input.Longitude
	event := &models.Event{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Description:    input.Description,
		StartDatetime:  input.StartDatetime,
		EndDatetime:    input.EndDatetime,
		Location:       input.Location,
		ZipCode:        input.ZipCode,
		StreetName:     input.StreetName,
		HouseNumber:    input.HouseNumber,
		Latitude:       &lat,
		Longitude:      &lng,
		Status:         models.EventStatusActive,
		EventTypeID:    eventTypeID,
		EventCreatorID: requester.ID,
	}

	creator := &models.EventParticipant{
		UserID:              requester.ID,
		IsCreator:           true,
		ParticipantStatusID: models.ParticipantStatusGoing,
	}

	if err := s.events.CreateWithCreator(ctx, event, creator); err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", event.ID).Str("creator_id", requester.ID).Msg("event created")
	return event, nil
}

// EditEvent applies a partial update; only the creator may edit.
func (s *EventService) EditEvent(ctx context.Context, requesterID, eventID string, input EditEventInput) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.EventCreatorID != requesterID {
		return nil, fmt.Errorf("%w: only the creator may edit an event", models.ErrForbidden)
	}

	fields, err := editFields(input)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return event, nil
	}

	if err := s.events.Update(ctx, eventID, fields); err != nil {
		return nil, err
	}
	return s.events.FindByID(ctx, eventID)
}

// DeleteEvent soft-deletes the event, its active participants and their
// reviews in one transaction, then notifies the participants.
func (s *EventService) DeleteEvent(ctx context.Context, requesterID, eventID string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.EventCreatorID != requesterID {
		return fmt.Errorf("%w: only the creator may delete an event", models.ErrForbidden)
	}

	// Snapshot recipients before the cascade hides the participant rows.
	participants, err := s.participants.FindActiveByEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.events.SoftDeleteCascade(ctx, eventID); err != nil {
		return err
	}
	s.log.Info().Str("event_id", eventID).Int("participants", len(participants)).Msg("event deleted")

	if s.notifier != nil {
		recipients := make([]models.User, 0, len(participants))
		for _, participant := range participants {
			if participant.UserID == requesterID {
				continue
			}
			recipients = append(recipients, participant.User)
		}
		if len(recipients) > 0 {
			if err := s.notifier.NotifyEventCancelled(event, recipients); err != nil {
				s.log.Warn().Err(err).Str("event_id", eventID).Msg("failed to notify participants")
			}
		}
	}

	return nil
}

// requesterWithPosition loads the requester and fails fast when their
// coordinate is missing; every distance is relative to it.
func (s *EventService) requesterWithPosition(ctx context.Context, requesterID string) (*models.User, error) {
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !validCoordinate(requester.Latitude, requester.Longitude) {
		return nil, fmt.Errorf("%w: requester has no valid position", models.ErrInvalidInput)
	}
	return requester, nil
}

// enrich attaches distance and owner login to every event. Owner logins are
// resolved in one batch query. An event whose own enrichment fails is
// dropped from the collection rather than aborting the query.
func (s *EventService) enrich(ctx context.Context, events []models.Event, requester *models.User) ([]EnrichedEvent, error) {
	if len(events) == 0 {
		return []EnrichedEvent{}, nil
	}

	creatorIDs := make([]string, 0, len(events))
	seen := make(map[string]bool, len(events))
	for _, event := range events {
		if !seen[event.EventCreatorID] {
			seen[event.EventCreatorID] = true
			creatorIDs = append(creatorIDs, event.EventCreatorID)
		}
	}

	owners, err := s.users.FindByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner logins: %w", err)
	}

	enriched := make([]EnrichedEvent, 0, len(events))
	for _, event := range events {
		entry, err := s.enrichOne(event, requester, owners[event.EventCreatorID].Login)
		if err != nil {
			if errors.Is(err, models.ErrInvalidInput) {
				s.log.Warn().Str("event_id", event.ID).Msg("skipping event without a valid coordinate")
				continue
			}
			return nil, err
		}
		enriched = append(enriched, entry)
	}
	return enriched, nil
}

func (s *EventService) enrichOne(event models.Event, requester *models.User, ownerLogin string) (EnrichedEvent, error) {
	if !validCoordinate(event.Latitude, event.Longitude) {
		return EnrichedEvent{}, fmt.Errorf("%w: event has no valid coordinate", models.ErrInvalidInput)
	}

	distance := DistanceKm(*event.Latitude, *event.Longitude, *requester.Latitude, *requester.Longitude)
	return EnrichedEvent{
		Event:      event,
		Distance:   fmt.Sprintf("%.3f", distance),
		OwnerLogin: ownerLogin,
		distanceKm: distance,
	}, nil
}

func editFields(input EditEventInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.StartDatetime != nil {
		fields["start_datetime"] = *input.StartDatetime
	}
	if input.EndDatetime != nil {
		fields["end_datetime"] = *input.EndDatetime
	}
	if input.Status != nil {
		if *input.Status < models.EventStatusDraft || *input.Status > models.EventStatusCancelled {
			return nil, fmt.Errorf("%w: unknown event status %d", models.ErrInvalidInput, *input.Status)
		}
		fields["status"] = *input.Status
	}
	if input.Latitude != nil || input.Longitude != nil {
		if !validCoordinate(input.Latitude, input.Longitude) {
			return nil, fmt.Errorf("%w: both latitude and longitude must be supplied and in range", models.ErrInvalidInput)
		}
		fields["latitude"] = *input.Latitude
		fields["longitude"] = *input.Longitude
	}
	if input.EventTypeID != nil {
		fields["event_type_id"] = *input.EventTypeID
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.ZipCode != nil {
		fields["zip_code"] = *input.ZipCode
	}
	if input.StreetName != nil {
		fields["street_name"] = *input.StreetName
	}
	if input.HouseNumber != nil {
		fields["house_number"] = *input.HouseNumber
	}
	return fields, nil
}
