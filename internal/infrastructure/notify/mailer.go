package notify

import (
	"context"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/hrm/backend/internal/infrastructure/config"
)

// Attachment is a file to send along with an email
type Attachment struct {
	Filename string
	Content  []byte
}

// Mailer sends outbound email
type Mailer interface {
	Send(ctx context.Context, to, subject, body string, attachments ...Attachment) error
}

// SMTPMailer sends email over SMTP via gomail
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer from config. An empty host disables
// sending and every Send call becomes a silent no-op.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// Send delivers one message. The context is accepted for interface
// symmetry; gomail dials synchronously without context support.
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string, attachments ...Attachment) error {
	if m.cfg.Host == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	for _, att := range attachments {
		content := att.Content
		msg.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.logger.Warn("email send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return err
	}
	return nil
}

// NoopMailer discards every message. Used in tests.
type NoopMailer struct{}

var _ Mailer = (*NoopMailer)(nil)

// Send does nothing
func (NoopMailer) Send(context.Context, string, string, string, ...Attachment) error {
	return nil
}
