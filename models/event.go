package models

import (
	"time"

	"gorm.io/gorm"
)

// EventStatus is the event lifecycle state.
type EventStatus int

const (
	EventStatusDraft     EventStatus = 0
	EventStatusActive    EventStatus = 1
	EventStatusCancelled EventStatus = 2
)

// Event is owned by its creator and mutable only by them. Coordinates are
// nullable: an event without a geocoordinate cannot be enriched with a
// distance and is skipped by collection queries.
type Event struct {
	ID             string         `json:"event_id" gorm:"primaryKey;column:event_id;size:191"`
	Name           string         `json:"name" gorm:"not null;size:50"`
	Description    string         `json:"description" gorm:"size:200"`
	StartDatetime  time.Time      `json:"start_datetime" gorm:"not null"`
	EndDatetime    time.Time      `json:"end_datetime" gorm:"not null"`
	Location       string         `json:"location" gorm:"size:100"`
	ZipCode        string         `json:"zip_code" gorm:"size:6"`
	StreetName     string         `json:"street_name" gorm:"size:50"`
	HouseNumber    string         `json:"house_number" gorm:"size:10"`
	Latitude       *float64       `json:"latitude"`
	Longitude      *float64       `json:"longitude"`
	Status         EventStatus    `json:"status" gorm:"not null;default:1"`
	EventTypeID    uint           `json:"event_type_id" gorm:"not null;default:1"`
	EventCreatorID string         `json:"event_creator_id" gorm:"not null;size:191;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	Creator      User               `json:"creator,omitempty" gorm:"foreignKey:EventCreatorID"`
	Type         EventType          `json:"type,omitempty" gorm:"foreignKey:EventTypeID"`
	Participants []EventParticipant `json:"participants,omitempty" gorm:"foreignKey:EventID"`
}

// EventType is a seeded lookup table; it has no CRUD surface here.
type EventType struct {
	ID        uint      `json:"event_type_id" gorm:"primaryKey;column:event_type_id"`
	Name      string    `json:"event_type_name" gorm:"column:event_type_name;uniqueIndex;not null;size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
