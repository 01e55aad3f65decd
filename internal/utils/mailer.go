package utils

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends transactional email over plain SMTP. When no host is
// configured it degrades to a no-op so local setups don't need a relay.
type Mailer struct {
	host   string
	port   string
	user   string
	pass   string
	from   string
	logger *slog.Logger
}

func NewMailer(host, port, user, pass, from string, logger *slog.Logger) *Mailer {
	if host == "" {
		logger.Warn("SMTP host is empty, mailer disabled.")
	}
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from, logger: logger}
}

func (m *Mailer) IsConfigured() bool {
	return m.host != ""
}

// Send delivers a single plain-text message to the given recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if !m.IsConfigured() {
		if m.logger != nil {
			m.logger.Debug("Mailer not configured, dropping message", slog.String("to", to), slog.String("subject", subject))
		}
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
