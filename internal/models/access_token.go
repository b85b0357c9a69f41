package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken is a batch-issued questionnaire token. Four are created together
// per client email (one per questionnaire type), each independently usable,
// revocable and expirable. Not tied to a Form row.
type AccessToken struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"not null;size:255;index" json:"email"`
	Questionnaire string    `gorm:"size:10;not null" json:"questionnaire"`
	Token         string    `gorm:"size:32;not null;uniqueIndex" json:"token"`
	ExpiresAt     time.Time `gorm:"not null" json:"expires_at"`
	Used          bool      `gorm:"not null;default:false" json:"used"`
	Revoked       bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt     time.Time `json:"created_at"`
}
