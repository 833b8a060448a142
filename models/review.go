package models

import (
	"time"

	"gorm.io/gorm"
)

// EventReview is authored by a participation, not directly by a user. One
// review per participation, backed by a unique index on
// event_participant_id.
type EventReview struct {
	ID                 uint           `json:"event_review_id" gorm:"primaryKey;column:event_review_id"`
	EventParticipantID uint           `json:"event_participant_id" gorm:"not null;index"`
	Content            string         `json:"content" gorm:"size:500"`
	Rating             int            `json:"rating" gorm:"not null"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`

	Participant EventParticipant `json:"-" gorm:"foreignKey:EventParticipantID"`
}
