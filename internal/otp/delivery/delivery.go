// Package delivery implements the out-of-band channels one-time codes are sent through.
// Every channel satisfies the otp service Notifier interface.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"log"

	"dealership-backoffice/internal/otp/domain"
	userdomain "dealership-backoffice/internal/user/domain"
)

// Notifier is implemented by every channel in this package.
type Notifier interface {
	Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error
}

// UserLookup resolves the contact details a channel sends to.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// ErrNoRecipient is returned when the user lacks the contact detail a channel needs.
var ErrNoRecipient = errors.New("delivery: user has no address for this channel")

// Log writes codes to the process log. Development only.
type Log struct{}

func (Log) Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error {
	log.Printf("otp: code for user=%s purpose=%s is %s", userID, purpose, code)
	return nil
}

// Fanout delivers through every channel and joins their errors.
type Fanout []Notifier

func (f Fanout) Deliver(ctx context.Context, userID, code string, purpose domain.Purpose) error {
	var errs []error
	for _, n := range f {
		if err := n.Deliver(ctx, userID, code, purpose); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// subject and body shared by the human-facing channels.
func subject(purpose domain.Purpose) string {
	switch purpose {
	case domain.PurposeRegister:
		return "Confirm your registration"
	case domain.PurposeLogin:
		return "Your sign-in code"
	case domain.PurposePurchase:
		return "Confirm your purchase request"
	case domain.PurposeUpdateVehicle:
		return "Confirm vehicle update"
	}
	return "Your verification code"
}

func body(code string) string {
	return fmt.Sprintf("Your verification code is %s. It expires in 5 minutes. If you did not request it, ignore this message.", code)
}

func lookup(ctx context.Context, users UserLookup, userID string) (*userdomain.User, error) {
	u, err := users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("delivery: user %s not found", userID)
	}
	return u, nil
}
