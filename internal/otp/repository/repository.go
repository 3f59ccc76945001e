package repository

import (
	"context"
	"time"

	"dealership-backoffice/internal/otp/domain"
)

// Repository defines persistence for one-time codes.
type Repository interface {
	// LockPair serializes code generation for (userID, purpose) until the surrounding
	// transaction ends. Must be called inside a transaction.
	LockPair(ctx context.Context, userID string, purpose domain.Purpose) error
	// InvalidateActive marks every unused code for the pair that has not expired at now as used.
	InvalidateActive(ctx context.Context, userID string, purpose domain.Purpose, now time.Time) (int64, error)
	Create(ctx context.Context, c *domain.Code) error
	// FindLatestUnused returns the most recently created unused code for the pair with the
	// given hash, or nil if none. Expired codes are returned too; the caller checks expiry.
	FindLatestUnused(ctx context.Context, userID string, purpose domain.Purpose, codeHash string) (*domain.Code, error)
	// MarkUsed flips is_used for id and reports whether this call did the flip.
	MarkUsed(ctx context.Context, id string) (bool, error)
}
