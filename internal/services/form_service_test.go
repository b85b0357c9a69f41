package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oakhavenpractice/intake-backend/internal/catalog"
	"github.com/oakhavenpractice/intake-backend/internal/config"
	"github.com/oakhavenpractice/intake-backend/internal/models"
	"github.com/oakhavenpractice/intake-backend/internal/scoring"
	"gorm.io/gorm"
)

type fakeMailer struct {
	err   error
	sent  int
	to    string
	link  string
	ftype string
}

func (m *fakeMailer) SendFormInvite(to, name, formType, link string) error {
	m.sent++
	m.to = to
	m.ftype = formType
	m.link = link
	return m.err
}

func newFormFixture(t *testing.T) (*FormService, *ClientService, *fakeMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cfg := &config.Config{
		TokenTTL:      14 * 24 * time.Hour,
		PublicBaseURL: "https://forms.oakhavenpractice.com",
	}
	mailer := &fakeMailer{}
	return NewFormService(db, cfg, cat, mailer), newClientService(db), mailer, db
}

func TestSendFormInvite(t *testing.T) {
	forms, clients, mailer, _ := newFormFixture(t)
	client, err := clients.Signup("jane@example.com", "Jane", nil)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	res, err := forms.SendFormInvite("Jane@Example.com", catalog.TypeSMI)
	if err != nil {
		t.Fatalf("SendFormInvite: %v", err)
	}
	if !res.EmailSent {
		t.Error("EmailSent = false, want true")
	}
	if res.Form.Token == "" {
		t.Fatal("form token is empty")
	}
	if res.Form.ClientID != client.ID {
		t.Errorf("form client = %s, want %s", res.Form.ClientID, client.ID)
	}
	wantExpiry := time.Now().Add(14 * 24 * time.Hour)
	if diff := res.Form.TokenExpiresAt.Sub(wantExpiry); diff > time.Minute || diff < -time.Minute {
		t.Errorf("token expiry %v not ~14 days out", res.Form.TokenExpiresAt)
	}
	if mailer.sent != 1 || mailer.to != "jane@example.com" {
		t.Errorf("mailer sent=%d to=%q", mailer.sent, mailer.to)
	}
	wantLink := "https://forms.oakhavenpractice.com/forms/smi/" + res.Form.Token
	if mailer.link != wantLink {
		t.Errorf("invite link = %q, want %q", mailer.link, wantLink)
	}
}

func TestSendFormInviteConflict(t *testing.T) {
	forms, clients, _, _ := newFormFixture(t)
	if _, err := clients.Signup("jane@example.com", "Jane", nil); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := forms.SendFormInvite("jane@example.com", catalog.TypeYSQ); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if _, err := forms.SendFormInvite("jane@example.com", catalog.TypeYSQ); !errors.Is(err, ErrActiveTokenExists) {
		t.Fatalf("second invite error = %v, want ErrActiveTokenExists", err)
	}
	// A different questionnaire type is not a conflict.
	if _, err := forms.SendFormInvite("jane@example.com", catalog.TypeBecks); err != nil {
		t.Fatalf("invite for another type: %v", err)
	}
}

func TestSendFormInviteErrors(t *testing.T) {
	forms, _, _, _ := newFormFixture(t)
	if _, err := forms.SendFormInvite("jane@example.com", "MMPI"); !errors.Is(err, ErrUnknownFormType) {
		t.Errorf("unknown type error = %v", err)
	}
	if _, err := forms.SendFormInvite("nobody@example.com", catalog.TypeSMI); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("unknown client error = %v", err)
	}
}

func TestSendFormInviteMailFailure(t *testing.T) {
	forms, clients, mailer, db := newFormFixture(t)
	if _, err := clients.Signup("jane@example.com", "Jane", nil); err != nil {
		t.Fatalf("signup: %v", err)
	}
	mailer.err = errors.New("smtp timeout")

	res, err := forms.SendFormInvite("jane@example.com", catalog.TypeBurns)
	if err != nil {
		t.Fatalf("SendFormInvite: %v", err)
	}
	if res.EmailSent {
		t.Error("EmailSent = true, want false on mail failure")
	}
	// The token row survives the mail failure.
	var count int64
	if err := db.Model(&models.Form{}).Where("token = ?", res.Form.Token).Count(&count).Error; err != nil || count != 1 {
		t.Errorf("form row count = %d (err %v), want 1", count, err)
	}
}

func TestGetQuestionnaire(t *testing.T) {
	forms, clients, _, _ := newFormFixture(t)
	if _, err := clients.Signup("jane@example.com", "Jane", nil); err != nil {
		t.Fatalf("signup: %v", err)
	}
	res, err := forms.SendFormInvite("jane@example.com", catalog.TypeBecks)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	q, err := forms.GetQuestionnaire(res.Form.Token)
	if err != nil {
		t.Fatalf("GetQuestionnaire: %v", err)
	}
	if q.FormType != catalog.TypeBecks {
		t.Errorf("form type = %q", q.FormType)
	}
	if len(q.Items) != 21 {
		t.Errorf("item count = %d, want 21", len(q.Items))
	}

	if _, err := forms.GetQuestionnaire("missing"); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("missing token error = %v", err)
	}
}

func TestGetQuestionnaireExpired(t *testing.T) {
	forms, clients, _, db := newFormFixture(t)
	client, err := clients.Signup("jane@example.com", "Jane", nil)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	form := models.Form{
		ID:             uuid.New(),
		ClientID:       client.ID,
		FormType:       catalog.TypeSMI,
		Token:          uuid.NewString(),
		TokenSentAt:    time.Now().Add(-15 * 24 * time.Hour),
		TokenExpiresAt: time.Now().Add(-24 * time.Hour),
		IsActive:       true,
	}
	if err := db.Create(&form).Error; err != nil {
		t.Fatalf("seed form: %v", err)
	}
	if _, err := forms.GetQuestionnaire(form.Token); !errors.Is(err, ErrFormExpired) {
		t.Errorf("expired token error = %v", err)
	}
}

func TestSubmitForm(t *testing.T) {
	forms, clients, _, _ := newFormFixture(t)
	if _, err := clients.Signup("jane@example.com", "Jane", nil); err != nil {
		t.Fatalf("signup: %v", err)
	}
	res, err := forms.SendFormInvite("jane@example.com", catalog.TypeBecks)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	answers := map[string]any{"becks1": 3, "becks2": 2, "becks3": 1}
	form, err := forms.SubmitForm(res.Form.Token, answers)
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if form.TotalScore == nil || *form.TotalScore != 6 {
		t.Errorf("total score = %v, want 6", form.TotalScore)
	}
	if form.SubmittedAt == nil || form.TokenUsedAt == nil {
		t.Error("submission timestamps not set")
	}
	if form.IsActive {
		t.Error("form still active after submission")
	}
	if !strings.Contains(string(form.Scores), "Minimal depression") {
		t.Errorf("scores %s missing severity label", form.Scores)
	}

	// The token is spent.
	if _, err := forms.SubmitForm(res.Form.Token, answers); !errors.Is(err, ErrFormSubmitted) {
		t.Errorf("resubmit error = %v, want ErrFormSubmitted", err)
	}
	// A submitted form no longer blocks a fresh invite.
	if _, err := forms.SendFormInvite("jane@example.com", catalog.TypeBecks); err != nil {
		t.Errorf("reinvite after submission: %v", err)
	}
}

func TestSubmitFormSMIScores(t *testing.T) {
	forms, clients, _, _ := newFormFixture(t)
	if _, err := clients.Signup("jane@example.com", "Jane", nil); err != nil {
		t.Fatalf("signup: %v", err)
	}
	res, err := forms.SendFormInvite("jane@example.com", catalog.TypeSMI)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	answers := make(map[string]any, 117)
	for _, item := range forms.catalog.ItemsFor(catalog.TypeSMI) {
		answers[item.ID] = 3
	}
	form, err := forms.SubmitForm(res.Form.Token, answers)
	if err != nil {
		t.Fatalf("SubmitForm: %v", err)
	}
	if form.TotalScore == nil || *form.TotalScore != 117*3 {
		t.Errorf("total score = %v, want %d", form.TotalScore, 117*3)
	}
	for _, mode := range []string{"Vulnerable Child", "Healthy Adult"} {
		if !strings.Contains(string(form.Scores), mode) {
			t.Errorf("scores missing mode %q", mode)
		}
	}
}

func TestSMISummaryMatrix(t *testing.T) {
	forms, clients, _, _ := newFormFixture(t)
	if _, err := clients.Signup("jane@example.com", "Jane", nil); err != nil {
		t.Fatalf("signup: %v", err)
	}
	res, err := forms.SendFormInvite("jane@example.com", catalog.TypeSMI)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	answers := make(map[string]any, 117)
	for _, item := range forms.catalog.ItemsFor(catalog.TypeSMI) {
		answers[item.ID] = 3
	}
	form, err := forms.SubmitForm(res.Form.Token, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	matrix, err := forms.SMISummaryMatrix(form)
	if err != nil {
		t.Fatalf("SMISummaryMatrix: %v", err)
	}
	if len(matrix) != len(catalog.ModeKeys) {
		t.Fatalf("matrix covers %d modes, want %d", len(matrix), len(catalog.ModeKeys))
	}
	for mode, p := range matrix {
		if p.Column == nil || p.Alignment == nil {
			t.Errorf("mode %s not placed: %+v", mode, p)
		}
	}
	// 3.0 sits in the vc band (2.64, 3.35) whose midpoint is 2.995.
	vc := matrix["Vulnerable Child"]
	if vc.Column == nil || *vc.Column != "Moderate - High" {
		t.Errorf("vc column = %v", vc.Column)
	}
	if vc.Alignment == nil || *vc.Alignment != scoring.AlignCenter {
		t.Errorf("vc alignment = %v", vc.Alignment)
	}

	// Non-SMI forms place nothing.
	other := &models.Form{FormType: catalog.TypeBecks, Scores: form.Scores}
	if m, err := forms.SMISummaryMatrix(other); err != nil || m != nil {
		t.Errorf("non-SMI matrix = %v, %v", m, err)
	}

	// Corrupt stored scores surface as an error, not a silent nil.
	corrupt := &models.Form{FormType: catalog.TypeSMI, Scores: []byte("{not json")}
	if _, err := forms.SMISummaryMatrix(corrupt); err == nil {
		t.Error("expected error for undecodable scores")
	}
}

func TestGetClientFormsStatus(t *testing.T) {
	forms, clients, _, _ := newFormFixture(t)

	// Unknown clients are a normal outcome.
	status, err := forms.GetClientFormsStatus(uuid.New())
	if err != nil {
		t.Fatalf("unknown client: %v", err)
	}
	if status.Exists {
		t.Error("Exists = true for unknown client")
	}
	if len(status.Forms) != len(catalog.Types) {
		t.Errorf("status covers %d types, want %d", len(status.Forms), len(catalog.Types))
	}
	for ftype, st := range status.Forms {
		if st.ActiveToken || st.Submitted {
			t.Errorf("type %s not all-false: %+v", ftype, st)
		}
	}

	client, err := clients.Signup("jane@example.com", "Jane", nil)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	res, err := forms.SendFormInvite("jane@example.com", catalog.TypeYSQ)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := forms.SubmitForm(res.Form.Token, map[string]any{}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := forms.SendFormInvite("jane@example.com", catalog.TypeSMI); err != nil {
		t.Fatalf("second invite: %v", err)
	}

	status, err = forms.GetClientFormsStatus(client.ID)
	if err != nil {
		t.Fatalf("GetClientFormsStatus: %v", err)
	}
	if !status.Exists {
		t.Error("Exists = false for known client")
	}
	if st := status.Forms[catalog.TypeYSQ]; !st.Submitted || st.ActiveToken {
		t.Errorf("YSQ status = %+v", st)
	}
	if st := status.Forms[catalog.TypeSMI]; st.Submitted || !st.ActiveToken {
		t.Errorf("SMI status = %+v", st)
	}
	if status.FormsCompleted != 1 {
		t.Errorf("FormsCompleted = %d, want 1", status.FormsCompleted)
	}
}

func TestComputeFormsStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	submitted := now.Add(-time.Minute)

	forms := []models.Form{
		// Live token.
		{FormType: catalog.TypeSMI, IsActive: true, TokenExpiresAt: future},
		// Expired token contributes nothing.
		{FormType: catalog.TypeYSQ, IsActive: true, TokenExpiresAt: past},
		// Submitted, token retired.
		{FormType: catalog.TypeBecks, IsActive: false, TokenExpiresAt: future, SubmittedAt: &submitted},
		// Unrecognized types are skipped.
		{FormType: "LEGACY", IsActive: true, TokenExpiresAt: future},
	}

	status := ComputeFormsStatus(forms, now)
	if st := status.Forms[catalog.TypeSMI]; !st.ActiveToken || st.Submitted {
		t.Errorf("SMI = %+v", st)
	}
	if st := status.Forms[catalog.TypeYSQ]; st.ActiveToken || st.Submitted {
		t.Errorf("YSQ = %+v", st)
	}
	if st := status.Forms[catalog.TypeBecks]; st.ActiveToken || !st.Submitted {
		t.Errorf("BECKS = %+v", st)
	}
	if st := status.Forms[catalog.TypeBurns]; st.ActiveToken || st.Submitted {
		t.Errorf("BURNS = %+v", st)
	}
	if status.FormsCompleted != 1 {
		t.Errorf("FormsCompleted = %d, want 1", status.FormsCompleted)
	}
	if _, ok := status.Forms["LEGACY"]; ok {
		t.Error("unrecognized type leaked into statuses")
	}
}

func TestClientResults(t *testing.T) {
	forms, clients, _, _ := newFormFixture(t)
	client, err := clients.Signup("jane@example.com", "Jane", nil)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	res, err := forms.SendFormInvite("jane@example.com", catalog.TypeBurns)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := forms.SubmitForm(res.Form.Token, map[string]any{"burns1": 2}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// An unsubmitted invite stays out of results.
	if _, err := forms.SendFormInvite("jane@example.com", catalog.TypeSMI); err != nil {
		t.Fatalf("second invite: %v", err)
	}

	results, err := forms.ClientResults(client.ID)
	if err != nil {
		t.Fatalf("ClientResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].FormType != catalog.TypeBurns {
		t.Errorf("result type = %q", results[0].FormType)
	}
}
