package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"

	"github.com/fjaouad/notes-api/internal/config"
)

// Mailer dispatches transactional email.
type Mailer interface {
	SendVerificationMail(to, name, host, token string) error
	SendResetPasswordMail(to, name, host, token string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

// NewSMTPMailer creates a Mailer backed by the configured SMTP credentials.
func NewSMTPMailer(cfg *config.Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPUser,
		log:    log,
	}
}

// SendVerificationMail mails the account-activation link.
func (m *SMTPMailer) SendVerificationMail(to, name, host, token string) error {
	body := fmt.Sprintf(`<h2>Welcome, %s!</h2>
<br/>
<p>Thank you for registering, you are almost done. Please read the below message to continue.</p>
<br/>
<p>In order to confirm your email, kindly click the verification link below.</p>
<br/>
<a href="http://%s/api/v1/auth/verify?token=%s">Click here to verify</a>`, name, host, token)

	return m.send(to, "Email Verification", body)
}

// SendResetPasswordMail mails the password-reset link.
func (m *SMTPMailer) SendResetPasswordMail(to, name, host, token string) error {
	body := fmt.Sprintf(`<h2>Dear, %s.</h2>
<br/>
<p>Your reset password link is available below.</p>
<br/>
<a href="http://%s/api/v1/auth/reset-password/%s">Reset</a>`, name, host, token)

	return m.send(to, "Reset Password", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
