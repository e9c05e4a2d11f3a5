// Package mail sends account emails over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"contacts_backend/internal/app/config"
)

// Mailer delivers confirmation emails over SMTP.
type Mailer struct {
	cfg     config.SMTPConfig
	baseURL string
}

// NewMailer creates a Mailer. baseURL is the externally visible server URL
// embedded in confirmation links.
func NewMailer(cfg config.SMTPConfig, baseURL string) *Mailer {
	return &Mailer{cfg: cfg, baseURL: strings.TrimRight(baseURL, "/")}
}

// SendConfirmation sends the email-confirmation message carrying the signed
// token link. When SMTP is not configured the send is skipped with a warning
// so development setups keep working.
func (m *Mailer) SendConfirmation(ctx context.Context, toEmail, username, token string) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		slog.Warn("smtp config missing, skip confirmation email", "to", toEmail)
		return nil
	}
	if strings.TrimSpace(toEmail) == "" {
		slog.Warn("email recipient empty, skip confirmation email")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Confirm your email")
	msg.SetBody("text/html", m.buildConfirmationBody(username, token))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	slog.Info("confirmation email sent", slog.String("to", toEmail))
	return nil
}

// buildConfirmationBody renders the HTML body with the confirmation link.
func (m *Mailer) buildConfirmationBody(username, token string) string {
	link := fmt.Sprintf("%s/auth/confirmed_email/%s", m.baseURL, token)

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Welcome, %s!</h2>
    <p>Please confirm your email address to activate your account:</p>
    <div style="text-align:center; margin: 16px 0;">
      <a href="%s" target="_blank"
         style="display:inline-block; padding: 12px 20px; background: #22c55e; color: #fff; text-decoration: none; border-radius: 8px; font-weight: bold;">
        Confirm email
      </a>
    </div>
    <p style="font-size: 12px; color: #6b7280;">The link is valid for 24 hours. If you did not create this account, ignore this message.</p>
  </div>
</body>
</html>`, username, link)
}
