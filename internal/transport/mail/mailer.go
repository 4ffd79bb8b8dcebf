package mail

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends the transactional mails of the account flows: email
// verification and password reset codes.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	if host == "" || port == 0 || from == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) SendVerificationCode(ctx context.Context, email, code string) error {
	subject := "Verify your RoamIO email address"
	body := fmt.Sprintf("Your RoamIO verification code is: %s\n\nEnter it in the app to activate your account.", code)
	return m.send(ctx, email, subject, body)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, code string) error {
	subject := "Your RoamIO password reset code"
	body := fmt.Sprintf("Use the following code to reset your password: %s\n\nIf you did not request this, ignore this email.", code)
	return m.send(ctx, email, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
