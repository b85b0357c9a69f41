package services

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/oakhavenpractice/intake-backend/internal/config"
)

// Mailer delivers questionnaire invites. The transport is a collaborator:
// callers only see success or failure.
type Mailer interface {
	SendFormInvite(to, name, formType, link string) error
}

// NewMailer returns the SMTP mailer when a host is configured, otherwise a
// log-only mailer for local development.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		slog.Warn("SMTP_HOST not set, invite emails will only be logged")
		return &LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

type SMTPMailer struct {
	cfg *config.Config
}

func (m *SMTPMailer) SendFormInvite(to, name, formType, link string) error {
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your %s questionnaire\r\n\r\n"+
			"Hi %s,\r\n\r\n"+
			"Please complete your %s questionnaire using the link below. "+
			"The link is personal and expires in 14 days.\r\n\r\n%s\r\n\r\n"+
			"Oakhaven Practice\r\n",
		m.cfg.MailFrom, to, formType, name, formType, link)

	var auth smtp.Auth
	if m.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	return smtp.SendMail(addr, auth, m.cfg.MailFrom, []string{to}, []byte(body))
}

// LogMailer logs invites instead of sending them.
type LogMailer struct{}

func (m *LogMailer) SendFormInvite(to, name, formType, link string) error {
	slog.Info("invite email (log only)", "to", to, "form_type", formType, "link", link)
	return nil
}
