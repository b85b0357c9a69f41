package dto

import (
	"time"

	"github.com/oakhavenpractice/intake-backend/internal/models"
)

type SignupRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	DOB   string `json:"dob,omitempty"` // YYYY-MM-DD
}

type ClientResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	DOB       *time.Time `json:"dob,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewClientResponse(c *models.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID.String(),
		Email:     c.Email,
		Name:      c.Name,
		DOB:       c.DOB,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}

// OKResponse is the {ok, data} envelope used by the client lifecycle
// endpoints.
type OKResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}
