package dto

import (
	"encoding/json"

	"github.com/oakhavenpractice/intake-backend/internal/scoring"
)

type SendFormRequest struct {
	Email    string `json:"email"`
	FormType string `json:"form_type"`
}

type SendFormResponse struct {
	FormID    string `json:"form_id"`
	FormType  string `json:"form_type"`
	ExpiresAt string `json:"expires_at"`
	EmailSent bool   `json:"email_sent"`
}

type SubmitFormRequest struct {
	Answers map[string]any `json:"answers"`
}

type FormResultResponse struct {
	FormID      string          `json:"form_id"`
	FormType    string          `json:"form_type"`
	TotalScore  *float64        `json:"total_score"`
	Scores      json.RawMessage `json:"scores,omitempty"`
	SubmittedAt string          `json:"submitted_at,omitempty"`

	// SMI only: per-mode placement on the summary-sheet band matrix.
	Matrix map[string]scoring.Placement `json:"matrix,omitempty"`
}

type GenerateTokensRequest struct {
	Email string `json:"email"`
}
