package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oakhavenpractice/intake-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService authenticates the therapist dashboard. There is a single
// configured credential pair; no user table.
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login checks the configured therapist credentials and issues a session JWT.
func (s *AuthService) Login(email, password string) (string, error) {
	if s.cfg.TherapistEmail == "" || s.cfg.TherapistPasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if NormalizeEmail(email) != NormalizeEmail(s.cfg.TherapistEmail) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.TherapistPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   "therapist",
		"email": NormalizeEmail(email),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
