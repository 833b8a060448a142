package models

import (
	"time"
)

// User carries the requester's current position used as the reference point
// for every distance computation. The engine never mutates a user except for
// that position.
type User struct {
	ID          string     `json:"user_id" gorm:"primaryKey;column:user_id;size:191"`
	Login       string     `json:"login" gorm:"uniqueIndex;not null;size:50"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password    string     `json:"-" gorm:"not null;size:255"`
	FirstName   string     `json:"first_name" gorm:"size:100"`
	LastName    string     `json:"last_name" gorm:"size:100"`
	BirthDate   *time.Time `json:"birth_date"`
	Description string     `json:"description" gorm:"size:255"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	IsAdmin     bool       `json:"is_admin" gorm:"default:false"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	CreatedEvents  []Event            `json:"created_events,omitempty" gorm:"foreignKey:EventCreatorID"`
	Participations []EventParticipant `json:"participations,omitempty" gorm:"foreignKey:UserID"`
}
