package delivery

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"dealership-backoffice/internal/otp/domain"
)

// Sender sends one composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email delivers codes to the user's email address over SMTP.
type Email struct {
	users  UserLookup
	sender Sender
	from   string
}

// NewEmail returns an SMTP channel. from defaults to user when empty.
func NewEmail(users UserLookup, host string, port int, user, password, from string) *Email {
	if from == "" {
		from = user
	}
	return &Email{users: users, sender: gomail.NewDialer(host, port, user, password), from: from}
}

// NewEmailWithSender is NewEmail with an explicit transport.
func NewEmailWithSender(users UserLookup, sender Sender, from string) *Email {
	return &Email{users: users, sender: sender, from: from}
}

func (e *Email) Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error {
	u, err := lookup(ctx, e.users, userID)
	if err != nil {
		return err
	}
	if u.Email == "" {
		return ErrNoRecipient
	}
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", u.Email)
	m.SetHeader("Subject", subject(purpose))
	m.SetBody("text/plain", body(code))
	if err := e.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	return nil
}
