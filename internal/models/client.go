package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client is a practice client created at signup. Email is stored lowercased
// and is the address questionnaire invites are sent to.
type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email  string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name   string    `gorm:"size:255" json:"name,omitempty"`
	DOB    *time.Time `json:"dob,omitempty"`
	Status string    `gorm:"size:20;not null;default:'active'" json:"status"`

	// Set on deactivation. DeleteInactiveAt is one year out; the daily sweep
	// purges the record once it passes.
	InactivatedAt    *time.Time `json:"inactivated_at,omitempty"`
	DeleteInactiveAt *time.Time `gorm:"index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Forms []Form `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
