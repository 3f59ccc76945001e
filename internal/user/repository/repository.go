package repository

import (
	"context"

	"dealership-backoffice/internal/user/domain"
)

// Repository defines persistence for users. Lookups return nil, nil when no row matches.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail expects an already normalized email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	// SetStatus updates the user's status; it is a no-op when the user does not exist.
	SetStatus(ctx context.Context, id string, status domain.UserStatus) error
	// ListByRole returns users with role ordered by full name.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
