package repository

import (
	"context"

	"dealership-backoffice/internal/vehicle/domain"
)

// Repository defines persistence for vehicles. Lookups return nil, nil when no row matches.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	// GetByIDForUpdate is GetByID with a row lock held until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Vehicle, error)
	// Search returns vehicles matching f ordered by make, then model.
	Search(ctx context.Context, f domain.Filter) ([]*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	// Delete removes the vehicle and reports whether a row existed.
	Delete(ctx context.Context, id string) (bool, error)
	// SetAvailable flips availability; it joins the transaction bound to ctx, if any.
	SetAvailable(ctx context.Context, id string, available bool) error
}
