package smtp

import (
	"fmt"

	"ratewatch/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers notifications to the configured recipient. STARTTLS is
// negotiated on the plain port; use_ssl switches to implicit TLS. One
// attempt per message, no retry: the next scheduled invocation is the retry
// mechanism.
type Mailer struct {
	cfg config.Email
}

func NewMailer(cfg config.Email) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SenderEmail)
	msg.SetHeader("To", m.cfg.RecipientEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.SMTPServer, m.cfg.SMTPPort, m.cfg.SenderEmail, m.cfg.SenderPassword)
	dialer.SSL = m.cfg.UseSSL

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", m.cfg.RecipientEmail, err)
	}
	return nil
}
