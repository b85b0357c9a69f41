package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Form is one issued questionnaire instance. The token is a single-use
// capability: it dies when the form is submitted, revoked or expires.
//
// Invariant: per (client_id, form_type) at most one row may be active,
// unsubmitted and unexpired at the same time.
type Form struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	FormType string    `gorm:"size:10;not null;index" json:"form_type"`

	Token          string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	TokenSentAt    time.Time  `json:"token_sent_at"`
	TokenExpiresAt time.Time  `json:"token_expires_at"`
	TokenUsedAt    *time.Time `json:"token_used_at,omitempty"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`

	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	TotalScore  *float64       `json:"total_score,omitempty"`
	Answers     datatypes.JSON `json:"-"`
	Scores      datatypes.JSON `json:"scores,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
