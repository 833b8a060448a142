package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mikczynski/werble-backend/models"
)

func newTestReviewService(store *memStore) *ReviewService {
	nop := zerolog.Nop()
	return NewReviewService(
		&fakeReviewRepo{store: store},
		&fakeParticipantRepo{store: store},
		&fakeEventRepo{store: store},
		&nop,
	)
}

// reviewFixture wires an event created by alice with bob joined.
type reviewFixture struct {
	store        *memStore
	events       *EventService
	participants *ParticipantService
	reviews      *ReviewService
	event        *models.Event
	bobRow       *models.EventParticipant
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	store := newMemStore()
	store.addUser("alice", "alice", f64(0), f64(0))
	store.addUser("bob", "bob", f64(0), f64(0))
	eventSvc, _ := newTestEventService(store)
	participantSvc := newTestParticipantService(store)
	event := createTestEvent(t, eventSvc, "alice", 0, 0)
	bobRow, err := participantSvc.Join(context.Background(), "bob", event.ID)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	return &reviewFixture{
		store:        store,
		events:       eventSvc,
		participants: participantSvc,
		reviews:      newTestReviewService(store),
		event:        event,
		bobRow:       bobRow,
	}
}

func TestReviewService_CreateReview(t *testing.T) {
	t.Parallel()

	t.Run("participant reviews their own participation", func(t *testing.T) {
		fx := newReviewFixture(t)

		review, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "great evening", 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if review.ID == 0 {
			t.Fatalf("expected the review id to be assigned")
		}
		if review.EventParticipantID != fx.bobRow.ID {
			t.Fatalf("expected review bound to participation %d, got %d", fx.bobRow.ID, review.EventParticipantID)
		}
	})

	t.Run("someone else's participation is forbidden", func(t *testing.T) {
		fx := newReviewFixture(t)

		_, err := fx.reviews.CreateReview(context.Background(), "alice", fx.bobRow.ID, "not mine", 4)
		if !errors.Is(err, models.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("second review for the same participation conflicts", func(t *testing.T) {
		fx := newReviewFixture(t)

		if _, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "first", 4); err != nil {
			t.Fatalf("first review failed: %v", err)
		}
		_, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "second", 2)
		if !errors.Is(err, models.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("rating outside 1..5 is invalid", func(t *testing.T) {
		fx := newReviewFixture(t)

		if _, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "bad rating", 6); !errors.Is(err, models.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for rating 6, got %v", err)
		}
		if _, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "bad rating", 0); !errors.Is(err, models.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for rating 0, got %v", err)
		}
	})

	t.Run("empty content is invalid", func(t *testing.T) {
		fx := newReviewFixture(t)

		_, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "   ", 3)
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing participation", func(t *testing.T) {
		fx := newReviewFixture(t)

		_, err := fx.reviews.CreateReview(context.Background(), "bob", 9999, "ghost", 3)
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestReviewService_EditReview(t *testing.T) {
	t.Parallel()

	t.Run("author edits their review", func(t *testing.T) {
		fx := newReviewFixture(t)
		review, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "ok", 3)
		if err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}

		updated, err := fx.reviews.EditReview(context.Background(), "bob", review.ID, "actually great", 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Content != "actually great" || updated.Rating != 5 {
			t.Fatalf("expected updated content and rating, got %q/%d", updated.Content, updated.Rating)
		}
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		fx := newReviewFixture(t)
		review, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "ok", 3)
		if err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}

		_, err = fx.reviews.EditReview(context.Background(), "alice", review.ID, "hijacked", 1)
		if !errors.Is(err, models.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestReviewService_ReviewsForEvent(t *testing.T) {
	t.Parallel()

	t.Run("participants without a review contribute nothing", func(t *testing.T) {
		fx := newReviewFixture(t)
		if _, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "lovely", 5); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}

		entries, err := fx.reviews.ReviewsForEvent(context.Background(), fx.event.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// alice never reviewed; only bob's entry appears
		if len(entries) != 1 {
			t.Fatalf("expected one entry, got %d", len(entries))
		}
		if entries[0].Login != "bob" || entries[0].ParticipantID != fx.bobRow.ID {
			t.Fatalf("expected bob's review projected with his login, got %+v", entries[0])
		}
	})

	t.Run("reviews of a deleted event are unreachable", func(t *testing.T) {
		fx := newReviewFixture(t)
		if _, err := fx.reviews.CreateReview(context.Background(), "bob", fx.bobRow.ID, "lovely", 5); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}

		if err := fx.events.DeleteEvent(context.Background(), "alice", fx.event.ID); err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}

		_, err := fx.reviews.ReviewsForEvent(context.Background(), fx.event.ID)
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for a deleted event, got %v", err)
		}
	})

	t.Run("missing event", func(t *testing.T) {
		fx := newReviewFixture(t)

		_, err := fx.reviews.ReviewsForEvent(context.Background(), "missing")
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
