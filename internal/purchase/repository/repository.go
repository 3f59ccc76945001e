package repository

import (
	"context"
	"errors"

	"dealership-backoffice/internal/purchase/domain"
)

// ErrPendingExists is returned by Create when the user already has a pending purchase for
// the vehicle.
var ErrPendingExists = errors.New("pending purchase exists")

// ErrVehicleSold is returned by Transition when completing a purchase of a vehicle that
// already has a completed purchase.
var ErrVehicleSold = errors.New("vehicle already has a completed purchase")

// Repository defines persistence for purchases. Lookups return nil, nil when no row matches.
type Repository interface {
	Create(ctx context.Context, p *domain.Purchase) error
	GetByID(ctx context.Context, id string) (*domain.Purchase, error)
	// GetByIDForUpdate is GetByID with a row lock held until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Purchase, error)
	HasPending(ctx context.Context, userID, vehicleID string) (bool, error)
	// HasCompleted reports whether the vehicle has been sold.
	HasCompleted(ctx context.Context, vehicleID string) (bool, error)
	// ListByUser returns the user's purchases, newest purchase date first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Purchase, error)
	// ListAll returns every purchase, newest purchase date first.
	ListAll(ctx context.Context) ([]*domain.Purchase, error)
	// Transition moves the purchase from -> to and records the admin, only if it is still
	// in from. Reports whether a row changed.
	Transition(ctx context.Context, id string, from, to domain.Status, adminID string) (bool, error)
}
