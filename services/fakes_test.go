package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mikczynski/werble-backend/models"
)

// memStore is the shared in-memory backing for the fake repositories, so a
// cascade in one fake is visible through the others.
type memStore struct {
	users             map[string]models.User
	events            map[string]*models.Event
	participants      map[uint]*models.EventParticipant
	reviews           map[uint]*models.EventReview
	statuses          map[uint]bool
	nextParticipantID uint
	nextReviewID      uint
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[string]models.User{},
		events:       map[string]*models.Event{},
		participants: map[uint]*models.EventParticipant{},
		reviews:      map[uint]*models.EventReview{},
		statuses: map[uint]bool{
			models.ParticipantStatusGoing:      true,
			models.ParticipantStatusInterested: true,
			models.ParticipantStatusDeclined:   true,
		},
	}
}

func (m *memStore) addUser(id, login string, lat, lng *float64) models.User {
	user := models.User{
		ID:        id,
		Login:     login,
		Email:     login + "@example.com",
		FirstName: login,
		Latitude:  lat,
		Longitude: lng,
	}
	m.users[id] = user
	return user
}

func (m *memStore) activeParticipantsByEvent(eventID string) []models.EventParticipant {
	var out []models.EventParticipant
	for _, p := range m.participants {
		if p.EventID == eventID && !p.DeletedAt.Valid {
			entry := *p
			entry.User = m.users[p.UserID]
			out = append(out, entry)
		}
	}
	return out
}

func deletedNow() gorm.DeletedAt {
	return gorm.DeletedAt{Time: time.Now(), Valid: true}
}

func f64(v float64) *float64 { return &v }

type fakeEventRepo struct {
	store *memStore
}

func (f *fakeEventRepo) CreateWithCreator(_ context.Context, event *models.Event, creator *models.EventParticipant) error {
	if _, exists := f.store.events[event.ID]; exists {
		return fmt.Errorf("duplicate event id %s", event.ID)
	}
	stored := *event
	f.store.events[event.ID] = &stored

	f.store.nextParticipantID++
	creator.ID = f.store.nextParticipantID
	creator.EventID = event.ID
	storedCreator := *creator
	f.store.participants[creator.ID] = &storedCreator
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, eventID string) (*models.Event, error) {
	event, ok := f.store.events[eventID]
	if !ok || event.DeletedAt.Valid {
		return nil, models.ErrNotFound
	}
	out := *event
	return &out, nil
}

func (f *fakeEventRepo) FindActive(_ context.Context, includeParticipants bool) ([]models.Event, error) {
	var out []models.Event
	for _, event := range f.store.events {
		if event.DeletedAt.Valid {
			continue
		}
		entry := *event
		if includeParticipants {
			entry.Participants = f.store.activeParticipantsByEvent(event.ID)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeEventRepo) FindByCreator(_ context.Context, creatorID string, includeParticipants bool) ([]models.Event, error) {
	var out []models.Event
	for _, event := range f.store.events {
		if event.DeletedAt.Valid || event.EventCreatorID != creatorID {
			continue
		}
		entry := *event
		if includeParticipants {
			entry.Participants = f.store.activeParticipantsByEvent(event.ID)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeEventRepo) FindByParticipant(_ context.Context, userID string, includeParticipants bool) ([]models.Event, error) {
	var out []models.Event
	for _, event := range f.store.events {
		if event.DeletedAt.Valid {
			continue
		}
		joined := false
		for _, p := range f.store.participants {
			if p.EventID == event.ID && p.UserID == userID && !p.DeletedAt.Valid {
				joined = true
				break
			}
		}
		if !joined {
			continue
		}
		entry := *event
		if includeParticipants {
			entry.Participants = f.store.activeParticipantsByEvent(event.ID)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, eventID string, fields map[string]interface{}) error {
	event, ok := f.store.events[eventID]
	if !ok || event.DeletedAt.Valid {
		return models.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			event.Name = value.(string)
		case "description":
			event.Description = value.(string)
		case "start_datetime":
			event.StartDatetime = value.(time.Time)
		case "end_datetime":
			event.EndDatetime = value.(time.Time)
		case "status":
			event.Status = value.(models.EventStatus)
		case "latitude":
			event.Latitude = f64(value.(float64))
		case "longitude":
			event.Longitude = f64(value.(float64))
		case "event_type_id":
			event.EventTypeID = value.(uint)
		case "location":
			event.Location = value.(string)
		case "zip_code":
			event.ZipCode = value.(string)
		case "street_name":
			event.StreetName = value.(string)
		case "house_number":
			event.HouseNumber = value.(string)
		}
	}
	return nil
}

func (f *fakeEventRepo) SoftDeleteCascade(_ context.Context, eventID string) error {
	event, ok := f.store.events[eventID]
	if !ok || event.DeletedAt.Valid {
		return models.ErrNotFound
	}
	for _, p := range f.store.participants {
		if p.EventID != eventID || p.DeletedAt.Valid {
			continue
		}
		for _, review := range f.store.reviews {
			if review.EventParticipantID == p.ID && !review.DeletedAt.Valid {
				review.DeletedAt = deletedNow()
			}
		}
		p.DeletedAt = deletedNow()
	}
	event.DeletedAt = deletedNow()
	return nil
}

type fakeParticipantRepo struct {
	store *memStore
}

func (f *fakeParticipantRepo) JoinIfAbsent(_ context.Context, participant *models.EventParticipant) error {
	for _, p := range f.store.participants {
		if p.EventID == participant.EventID && p.UserID == participant.UserID && !p.DeletedAt.Valid {
			return models.ErrConflict
		}
	}
	f.store.nextParticipantID++
	participant.ID = f.store.nextParticipantID
	stored := *participant
	f.store.participants[participant.ID] = &stored
	return nil
}

func (f *fakeParticipantRepo) FindByID(_ context.Context, participantID uint) (*models.EventParticipant, error) {
	participant, ok := f.store.participants[participantID]
	if !ok || participant.DeletedAt.Valid {
		return nil, models.ErrNotFound
	}
	out := *participant
	out.User = f.store.users[participant.UserID]
	return &out, nil
}

func (f *fakeParticipantRepo) FindActiveByEvent(_ context.Context, eventID string) ([]models.EventParticipant, error) {
	return f.store.activeParticipantsByEvent(eventID), nil
}

func (f *fakeParticipantRepo) UpdateStatus(_ context.Context, participantID uint, statusID uint) error {
	participant, ok := f.store.participants[participantID]
	if !ok || participant.DeletedAt.Valid {
		return models.ErrNotFound
	}
	participant.ParticipantStatusID = statusID
	return nil
}

func (f *fakeParticipantRepo) StatusExists(_ context.Context, statusID uint) (bool, error) {
	return f.store.statuses[statusID], nil
}

type fakeReviewRepo struct {
	store *memStore
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.EventReview) error {
	f.store.nextReviewID++
	review.ID = f.store.nextReviewID
	review.CreatedAt = time.Now()
	stored := *review
	f.store.reviews[review.ID] = &stored
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, reviewID uint) (*models.EventReview, error) {
	review, ok := f.store.reviews[reviewID]
	if !ok || review.DeletedAt.Valid {
		return nil, models.ErrNotFound
	}
	out := *review
	return &out, nil
}

func (f *fakeReviewRepo) FindByParticipantIDs(_ context.Context, participantIDs []uint) ([]models.EventReview, error) {
	wanted := make(map[uint]bool, len(participantIDs))
	for _, id := range participantIDs {
		wanted[id] = true
	}
	var out []models.EventReview
	for _, review := range f.store.reviews {
		if review.DeletedAt.Valid || !wanted[review.EventParticipantID] {
			continue
		}
		out = append(out, *review)
	}
	return out, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, reviewID uint, content string, rating int) error {
	review, ok := f.store.reviews[reviewID]
	if !ok || review.DeletedAt.Valid {
		return models.ErrNotFound
	}
	review.Content = content
	review.Rating = rating
	return nil
}

func (f *fakeReviewRepo) ExistsForParticipant(_ context.Context, participantID uint) (bool, error) {
	for _, review := range f.store.reviews {
		if review.EventParticipantID == participantID && !review.DeletedAt.Valid {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	store *memStore
}

func (f *fakeUserRepo) FindByID(_ context.Context, userID string) (*models.User, error) {
	user, ok := f.store.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := user
	return &out, nil
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, userIDs []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(userIDs))
	for _, id := range userIDs {
		if user, ok := f.store.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdatePosition(_ context.Context, userID string, latitude, longitude float64) error {
	user, ok := f.store.users[userID]
	if !ok {
		return nil
	}
	user.Latitude = f64(latitude)
	user.Longitude = f64(longitude)
	f.store.users[userID] = user
	return nil
}

type fakeNotifier struct {
	events     []string
	recipients [][]models.User
}

func (f *fakeNotifier) NotifyEventCancelled(event *models.Event, recipients []models.User) error {
	f.events = append(f.events, event.ID)
	f.recipients = append(f.recipients, recipients)
	return nil
}
