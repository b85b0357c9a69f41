package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oakhavenpractice/intake-backend/internal/catalog"
	"github.com/oakhavenpractice/intake-backend/internal/config"
	"github.com/oakhavenpractice/intake-backend/internal/models"
	"github.com/oakhavenpractice/intake-backend/internal/scoring"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUnknownFormType   = errors.New("unknown form type")
	ErrActiveTokenExists = errors.New("active token already exists for this form")
	ErrFormNotFound      = errors.New("form not found")
	ErrFormSubmitted     = errors.New("form has already been submitted")
	ErrFormInactive      = errors.New("form token revoked")
	ErrFormExpired       = errors.New("form token expired")
)

type FormService struct {
	db      *gorm.DB
	cfg     *config.Config
	catalog *catalog.Catalog
	mailer  Mailer
}

func NewFormService(db *gorm.DB, cfg *config.Config, cat *catalog.Catalog, mailer Mailer) *FormService {
	return &FormService{db: db, cfg: cfg, catalog: cat, mailer: mailer}
}

// InviteResult reports a created form token and whether the invite email
// actually went out.
type InviteResult struct {
	Form      *models.Form `json:"form"`
	EmailSent bool         `json:"email_sent"`
}

// SendFormInvite creates a fresh form token for the client and emails the
// questionnaire link. At most one outstanding token per (client, form type)
// may exist; a second request while one is live is a conflict.
//
// The token row is persisted before the email goes out; a transport failure
// is reported, not rolled back.
func (s *FormService) SendFormInvite(email, formType string) (*InviteResult, error) {
	if !catalog.ValidType(formType) {
		return nil, ErrUnknownFormType
	}

	var client models.Client
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	var outstanding int64
	err := s.db.Model(&models.Form{}).
		Where("client_id = ? AND form_type = ? AND is_active = ? AND submitted_at IS NULL AND token_expires_at > ?",
			client.ID, formType, true, time.Now()).
		Count(&outstanding).Error
	if err != nil {
		return nil, err
	}
	if outstanding > 0 {
		return nil, ErrActiveTokenExists
	}

	now := time.Now()
	form := models.Form{
		ID:             uuid.New(),
		ClientID:       client.ID,
		FormType:       formType,
		Token:          uuid.NewString(),
		TokenSentAt:    now,
		TokenExpiresAt: now.Add(s.cfg.TokenTTL),
		IsActive:       true,
	}
	if err := s.db.Create(&form).Error; err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	link := s.cfg.PublicBaseURL + "/forms/" + strings.ToLower(formType) + "/" + form.Token
	emailSent := true
	if err := s.mailer.SendFormInvite(client.Email, client.Name, formType, link); err != nil {
		emailSent = false
		slog.Error("invite email failed", "client_id", client.ID.String(), "form_type", formType, "error", err)
	}

	return &InviteResult{Form: &form, EmailSent: emailSent}, nil
}

// Questionnaire is the payload a form token unlocks.
type Questionnaire struct {
	FormType string         `json:"form_type"`
	Items    []catalog.Item `json:"items"`
}

// GetQuestionnaire resolves a form token to its item list, enforcing the
// same checks a submission would.
func (s *FormService) GetQuestionnaire(token string) (*Questionnaire, error) {
	form, err := s.lookupLiveForm(token)
	if err != nil {
		return nil, err
	}
	return &Questionnaire{
		FormType: form.FormType,
		Items:    s.catalog.ItemsFor(form.FormType),
	}, nil
}

// SubmitForm scores a submission and retires its token. Answers map item ids
// to chosen option values; anything missing or malformed scores as 0.
func (s *FormService) SubmitForm(token string, answers map[string]any) (*models.Form, error) {
	form, err := s.lookupLiveForm(token)
	if err != nil {
		return nil, err
	}

	total, scores := s.scoreSubmission(form.FormType, answers)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scores: %w", err)
	}

	now := time.Now()
	form.Answers = datatypes.JSON(answersJSON)
	form.Scores = datatypes.JSON(scoresJSON)
	form.TotalScore = &total
	form.SubmittedAt = &now
	form.TokenUsedAt = &now
	form.IsActive = false

	if err := s.db.Save(form).Error; err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}
	return form, nil
}

func (s *FormService) lookupLiveForm(token string) (*models.Form, error) {
	var form models.Form
	if err := s.db.Where("token = ?", token).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	switch {
	case form.SubmittedAt != nil:
		return nil, ErrFormSubmitted
	case !form.IsActive:
		return nil, ErrFormInactive
	case form.TokenExpiresAt.Before(time.Now()):
		return nil, ErrFormExpired
	}
	return &form, nil
}

func (s *FormService) scoreSubmission(formType string, answers map[string]any) (float64, any) {
	items := s.catalog.ItemsFor(formType)

	switch formType {
	case catalog.TypeSMI:
		modeScores := scoring.ComputeSMIScores(answers, items, catalog.ModeKeys, catalog.SMIBoundaries)
		var total float64
		for _, item := range items {
			total += scoring.NumericAnswer(answers[item.ID])
		}
		return total, modeScores
	case catalog.TypeYSQ:
		arrays := scoring.BuildYSQAnswerArrays(answers, s.catalog.YSQSchemas())
		schemaScores := scoring.ScoreYSQ(arrays, s.catalog.YSQSchemas())
		var total float64
		for _, score := range schemaScores {
			total += score.Raw
		}
		return total, schemaScores
	case catalog.TypeBecks:
		result := scoring.ScoreInventory(answers, items, catalog.BecksSeverity)
		return result.Total, result
	case catalog.TypeBurns:
		result := scoring.ScoreInventory(answers, items, catalog.BurnsSeverity)
		return result.Total, result
	default:
		return 0, nil
	}
}

// SMISummaryMatrix places each stored SMI mode average on the summary-sheet
// band matrix. Non-SMI and unscored forms place nothing.
func (s *FormService) SMISummaryMatrix(form *models.Form) (map[string]scoring.Placement, error) {
	if form.FormType != catalog.TypeSMI || len(form.Scores) == 0 {
		return nil, nil
	}

	var modeScores map[string]scoring.ModeScore
	if err := json.Unmarshal(form.Scores, &modeScores); err != nil {
		return nil, fmt.Errorf("failed to decode stored scores: %w", err)
	}

	placements := make(map[string]scoring.Placement, len(modeScores))
	for mode, score := range modeScores {
		scoreStr := strconv.FormatFloat(score.Average, 'f', -1, 64) + " - " + score.Label
		placements[mode] = scoring.ClassifyBandAlignment(scoreStr, catalog.ModeKeys[mode], catalog.SMIBoundaries)
	}
	return placements, nil
}

// TypeStatus is the per-questionnaire-type slice of a client's progress.
type TypeStatus struct {
	ActiveToken bool `json:"activeToken"`
	Submitted   bool `json:"submitted"`
}

// ClientFormsStatus aggregates a client's progress across all four types.
// Exists is false for unknown clients; that is a normal outcome, not an
// error.
type ClientFormsStatus struct {
	Exists         bool                  `json:"exists"`
	Forms          map[string]TypeStatus `json:"forms"`
	FormsCompleted int                   `json:"formsCompleted"`
}

// GetClientFormsStatus never fails on an unknown client: it reports
// exists:false with all-false statuses.
func (s *FormService) GetClientFormsStatus(clientID uuid.UUID) (*ClientFormsStatus, error) {
	var client models.Client
	err := s.db.First(&client, "id = ?", clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ClientFormsStatus{Exists: false, Forms: emptyStatuses()}, nil
	}
	if err != nil {
		return nil, err
	}

	var forms []models.Form
	if err := s.db.Where("client_id = ?", client.ID).Find(&forms).Error; err != nil {
		return nil, err
	}

	status := ComputeFormsStatus(forms, time.Now())
	status.Exists = true
	return status, nil
}

// ComputeFormsStatus derives the per-type statuses from a client's form rows.
// Pure predicate logic over the row set.
func ComputeFormsStatus(forms []models.Form, now time.Time) *ClientFormsStatus {
	statuses := emptyStatuses()
	for _, form := range forms {
		st, ok := statuses[form.FormType]
		if !ok {
			continue
		}
		if form.IsActive && form.SubmittedAt == nil && form.TokenExpiresAt.After(now) {
			st.ActiveToken = true
		}
		if form.SubmittedAt != nil {
			st.Submitted = true
		}
		statuses[form.FormType] = st
	}

	completed := 0
	for _, st := range statuses {
		if st.Submitted {
			completed++
		}
	}
	return &ClientFormsStatus{Forms: statuses, FormsCompleted: completed}
}

func emptyStatuses() map[string]TypeStatus {
	statuses := make(map[string]TypeStatus, len(catalog.Types))
	for _, t := range catalog.Types {
		statuses[t] = TypeStatus{}
	}
	return statuses
}

// ClientResults returns a client's submitted forms, most recent first.
func (s *FormService) ClientResults(clientID uuid.UUID) ([]models.Form, error) {
	var forms []models.Form
	err := s.db.Where("client_id = ? AND submitted_at IS NOT NULL", clientID).
		Order("submitted_at DESC").Find(&forms).Error
	return forms, err
}
