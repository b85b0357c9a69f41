package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oakhavenpractice/intake-backend/internal/catalog"
	"github.com/oakhavenpractice/intake-backend/internal/models"
	"gorm.io/gorm"
)

// Token validation messages. Fixed strings; the frontend matches on them.
const (
	msgTokenNotFound = "Token not found"
	msgTokenUsed     = "Token has already been used"
	msgTokenRevoked  = "Token access revoked"
	msgTokenExpired  = "Token expired"
	msgInternalError = "Internal server error"
)

// ErrTokenNotFound reports a lookup miss on a token that should exist.
var ErrTokenNotFound = errors.New("token not found")

// TokenGenerationError wraps any failure inside the atomic token batch.
// The batch has already been rolled back by the time it is returned.
type TokenGenerationError struct {
	Cause error
}

func (e *TokenGenerationError) Error() string {
	if e.Cause == nil {
		return "token generation failed"
	}
	return "token generation failed: " + e.Cause.Error()
}

func (e *TokenGenerationError) Unwrap() error {
	return e.Cause
}

// IssuedToken is one token of a generated batch.
type IssuedToken struct {
	Questionnaire string    `json:"questionnaire"`
	Token         string    `json:"token"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ValidationResult is the outcome of a token lookup. Invalid tokens are
// ordinary data, never errors.
type ValidationResult struct {
	Valid         bool   `json:"valid"`
	Message       string `json:"message,omitempty"`
	Email         string `json:"email,omitempty"`
	Questionnaire string `json:"questionnaire,omitempty"`
}

type TokenService struct {
	db   *gorm.DB
	pool TokenConnPool
	ttl  time.Duration
}

func NewTokenService(db *gorm.DB, pool TokenConnPool, ttl time.Duration) *TokenService {
	return &TokenService{db: db, pool: pool, ttl: ttl}
}

// GenerateTokens creates one access token per questionnaire type for the
// given email, all inside a single transaction sharing one expiry timestamp.
// On any insert failure the whole batch rolls back and a
// *TokenGenerationError is returned. Connection acquisition failure
// propagates as-is.
func (s *TokenService) GenerateTokens(ctx context.Context, email string) ([]IssuedToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	issued, genErr := s.runBatch(ctx, conn, email)

	if relErr := conn.Release(); relErr != nil {
		// A release failure must not mask the batch outcome.
		slog.Error("token connection release failed", "error", relErr)
	}

	if genErr != nil {
		return nil, genErr
	}
	return issued, nil
}

func (s *TokenService) runBatch(ctx context.Context, conn TokenConn, email string) ([]IssuedToken, error) {
	if err := conn.Begin(ctx); err != nil {
		return nil, &TokenGenerationError{Cause: err}
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	issued := make([]IssuedToken, 0, len(catalog.Types))
	for _, questionnaire := range catalog.Types {
		token, err := randomToken()
		if err == nil {
			record := &models.AccessToken{
				ID:            uuid.New(),
				Email:         email,
				Questionnaire: questionnaire,
				Token:         token,
				ExpiresAt:     expiresAt,
				CreatedAt:     now,
			}
			err = conn.InsertAccessToken(ctx, record)
		}
		if err != nil {
			if rbErr := conn.Rollback(); rbErr != nil {
				slog.Error("token batch rollback failed", "error", rbErr)
			}
			return nil, &TokenGenerationError{Cause: err}
		}
		issued = append(issued, IssuedToken{
			Questionnaire: questionnaire,
			Token:         token,
			ExpiresAt:     expiresAt,
		})
	}

	if err := conn.Commit(); err != nil {
		return nil, &TokenGenerationError{Cause: err}
	}
	return issued, nil
}

// ValidateToken checks a token against the store. The checks run in fixed
// precedence: existence, used, revoked, expired.
func (s *TokenService) ValidateToken(token string) ValidationResult {
	var record models.AccessToken
	err := s.db.Where("token = ?", token).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ValidationResult{Valid: false, Message: msgTokenNotFound}
	}
	if err != nil {
		slog.Error("token lookup failed", "error", err)
		return ValidationResult{Valid: false, Message: msgInternalError}
	}

	switch {
	case record.Used:
		return ValidationResult{Valid: false, Message: msgTokenUsed}
	case record.Revoked:
		return ValidationResult{Valid: false, Message: msgTokenRevoked}
	case record.ExpiresAt.Before(time.Now()):
		return ValidationResult{Valid: false, Message: msgTokenExpired}
	}

	return ValidationResult{
		Valid:         true,
		Email:         record.Email,
		Questionnaire: record.Questionnaire,
	}
}

// MarkTokenUsed flips the used flag after a questionnaire submission.
func (s *TokenService) MarkTokenUsed(token string) error {
	result := s.db.Model(&models.AccessToken{}).Where("token = ?", token).Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// RevokeTokens revokes every outstanding token for an email.
func (s *TokenService) RevokeTokens(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.db.Model(&models.AccessToken{}).
		Where("email = ? AND used = false AND revoked = false", email).
		Update("revoked", true).Error
}

// randomToken returns a 32-character opaque hex token.
func randomToken() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
