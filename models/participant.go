package models

import (
	"time"

	"gorm.io/gorm"
)

// Well-known participant status ids, seeded at migration time.
const (
	ParticipantStatusGoing      uint = 1
	ParticipantStatusInterested uint = 2
	ParticipantStatusDeclined   uint = 3
)

// EventParticipant is the (event, user) join row. The creator row is inserted
// in the same transaction as its event and its IsCreator flag is never
// changed afterwards. Participation is soft-deletable independently of the
// event; review authorship hangs off this row, not off the user.
type EventParticipant struct {
	ID                  uint           `json:"event_participant_id" gorm:"primaryKey;column:event_participant_id"`
	EventID             string         `json:"event_id" gorm:"not null;size:191;index:idx_event_participants_event_user"`
	UserID              string         `json:"user_id" gorm:"not null;size:191;index:idx_event_participants_event_user"`
	IsCreator           bool           `json:"is_creator" gorm:"not null;default:false"`
	ParticipantStatusID uint           `json:"participant_status_id" gorm:"not null;default:1"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`

	Event  Event             `json:"event,omitempty" gorm:"foreignKey:EventID"`
	User   User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status ParticipantStatus `json:"participant_status,omitempty" gorm:"foreignKey:ParticipantStatusID"`
	Review *EventReview      `json:"review,omitempty" gorm:"foreignKey:EventParticipantID"`
}

// ParticipantStatus is a seeded lookup table; it has no CRUD surface here.
type ParticipantStatus struct {
	ID        uint      `json:"participant_status_id" gorm:"primaryKey;column:participant_status_id"`
	Name      string    `json:"participant_status_name" gorm:"column:participant_status_name;uniqueIndex;not null;size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
