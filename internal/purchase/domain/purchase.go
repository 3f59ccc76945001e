package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a purchase request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// ParseStatus accepts canonical and capitalized spellings.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "pending", "Pending":
		return StatusPending, nil
	case "completed", "Completed":
		return StatusCompleted, nil
	case "rejected", "Rejected":
		return StatusRejected, nil
	}
	return "", fmt.Errorf("unknown purchase status %q", s)
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// CanTransition reports whether from -> to is an edge of the purchase state machine.
func CanTransition(from, to Status) bool {
	return from == StatusPending && to.Terminal()
}

// Purchase is a customer's request to buy a vehicle. Rows are never deleted.
type Purchase struct {
	ID                 string
	UserID             string
	VehicleID          string
	PurchaseDate       time.Time
	PriceAtPurchase    decimal.Decimal
	Status             Status
	ProcessedByAdminID string // empty until Completed or Rejected
}
