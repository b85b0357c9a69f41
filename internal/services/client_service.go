package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oakhavenpractice/intake-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrClientNotFound = errors.New("client not found")
)

type ClientService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewClientService(db *gorm.DB, tokens *TokenService) *ClientService {
	return &ClientService{db: db, tokens: tokens}
}

// Signup registers a new client. Email is case-normalized before the
// uniqueness check.
func (s *ClientService) Signup(email, name string, dob *time.Time) (*models.Client, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}

	var existing models.Client
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	client := models.Client{
		ID:     uuid.New(),
		Email:  email,
		Name:   strings.TrimSpace(name),
		DOB:    dob,
		Status: models.ClientStatusActive,
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

func (s *ClientService) List() ([]models.Client, error) {
	var clients []models.Client
	err := s.db.Order("created_at DESC").Find(&clients).Error
	return clients, err
}

func (s *ClientService) Get(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (s *ClientService) GetByEmail(email string) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// Activate reinstates an inactive client and clears the scheduled purge.
func (s *ClientService) Activate(id uuid.UUID) (*models.Client, error) {
	client, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	client.Status = models.ClientStatusActive
	client.InactivatedAt = nil
	client.DeleteInactiveAt = nil
	if err := s.db.Save(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// Deactivate marks a client inactive, revokes their outstanding access
// tokens and schedules the record for purge one year out.
func (s *ClientService) Deactivate(id uuid.UUID) (*models.Client, error) {
	client, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	purgeAt := now.AddDate(1, 0, 0)
	client.Status = models.ClientStatusInactive
	client.InactivatedAt = &now
	client.DeleteInactiveAt = &purgeAt
	if err := s.db.Save(client).Error; err != nil {
		return nil, err
	}
	if err := s.tokens.RevokeTokens(client.Email); err != nil {
		return nil, fmt.Errorf("failed to revoke access tokens: %w", err)
	}
	return client, nil
}

// PurgeInactive hard-deletes clients whose purge date has passed, along with
// their forms and access tokens. Returns the number of purged clients.
func (s *ClientService) PurgeInactive(now time.Time) (int64, error) {
	var due []models.Client
	if err := s.db.Where("delete_inactive_at IS NOT NULL AND delete_inactive_at < ?", now).Find(&due).Error; err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	var purged int64
	for _, client := range due {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("client_id = ?", client.ID).Delete(&models.Form{}).Error; err != nil {
				return err
			}
			if err := tx.Where("email = ?", client.Email).Delete(&models.AccessToken{}).Error; err != nil {
				return err
			}
			return tx.Delete(&client).Error
		})
		if err != nil {
			slog.Error("client purge failed", "client_id", client.ID.String(), "error", err)
			continue
		}
		purged++
	}
	return purged, nil
}

// StartInactiveSweep runs a daily goroutine that purges clients past their
// delete date.
func (s *ClientService) StartInactiveSweep(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purged, err := s.PurgeInactive(time.Now())
				if err != nil {
					slog.Error("inactive client sweep failed", "error", err)
				} else if purged > 0 {
					slog.Info("inactive client sweep completed", "purged", purged)
				}
			case <-done:
				return
			}
		}
	}()
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
