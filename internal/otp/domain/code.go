package domain

import (
	"fmt"
	"strings"
	"time"
)

// Purpose scopes a one-time code to the action it authorizes.
type Purpose string

const (
	PurposeRegister      Purpose = "register"
	PurposeLogin         Purpose = "login"
	PurposePurchase      Purpose = "purchase"
	PurposeUpdateVehicle Purpose = "update_vehicle"
)

// ParsePurpose accepts the canonical names and the CamelCase spellings used by older clients.
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "register":
		return PurposeRegister, nil
	case "login":
		return PurposeLogin, nil
	case "purchase":
		return PurposePurchase, nil
	case "update_vehicle", "updatevehicle":
		return PurposeUpdateVehicle, nil
	}
	return "", fmt.Errorf("unknown otp purpose %q", s)
}

// Valid reports whether p is one of the known purposes.
func (p Purpose) Valid() bool {
	_, err := ParsePurpose(string(p))
	return err == nil && strings.ToLower(string(p)) == string(p)
}

// Code is a stored one-time code. Only CodeHash is persisted; Plain is set on the record
// returned by generation so it can be handed to a delivery channel.
type Code struct {
	ID        string
	UserID    string
	Purpose   Purpose
	CodeHash  string
	Plain     string
	ExpiresAt time.Time
	IsUsed    bool
	CreatedAt time.Time
}

// Active reports whether the code is unused and not yet expired at now.
func (c *Code) Active(now time.Time) bool {
	return c != nil && !c.IsUsed && !c.ExpiresAt.Before(now)
}
