// Package service implements vehicle inventory operations: search, CRUD and OTP-gated updates.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"dealership-backoffice/internal/apperr"
	otpdomain "dealership-backoffice/internal/otp/domain"
	"dealership-backoffice/internal/vehicle/domain"
	"dealership-backoffice/internal/vehicle/repository"
)

var (
	ErrVehicleNotFound = fmt.Errorf("%w: vehicle not found", apperr.ErrNotFound)
	ErrVehicleInUse    = fmt.Errorf("%w: vehicle has purchases", apperr.ErrConflict)
	ErrVehicleSold     = fmt.Errorf("%w: vehicle already sold", apperr.ErrConflict)
)

// OTPs issues and consumes update_vehicle codes.
type OTPs interface {
	Generate(ctx context.Context, userID string, purpose otpdomain.Purpose) (*otpdomain.Code, error)
	Require(ctx context.Context, userID, code string, purpose otpdomain.Purpose) error
}

// SalesLookup tells whether a vehicle has a completed purchase.
type SalesLookup interface {
	HasCompleted(ctx context.Context, vehicleID string) (bool, error)
}

// Transactor runs fn in a single storage transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the vehicle inventory.
type Service struct {
	repo  repository.Repository
	sales SalesLookup
	otps  OTPs
	tx    Transactor
	now   func() time.Time
	newID func() string
}

// NewService returns a vehicle service.
func NewService(repo repository.Repository, sales SalesLookup, otps OTPs, tx Transactor) *Service {
	return &Service{
		repo:  repo,
		sales: sales,
		otps:  otps,
		tx:    tx,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Search returns available vehicles matching f, ordered by make then model.
func (s *Service) Search(ctx context.Context, f domain.Filter) ([]*domain.Vehicle, error) {
	if f.MinYear > 0 && f.MaxYear > 0 && f.MinYear > f.MaxYear {
		return nil, fmt.Errorf("%w: min year exceeds max year", apperr.ErrInvalidArgument)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, fmt.Errorf("%w: min price exceeds max price", apperr.ErrInvalidArgument)
	}
	f.AvailableOnly = true
	return s.repo.Search(ctx, f)
}

// Get returns one vehicle or ErrVehicleNotFound.
func (s *Service) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVehicleNotFound
	}
	return v, nil
}

// Create adds an available vehicle. ID, availability and creation time are assigned here.
func (s *Service) Create(ctx context.Context, in domain.Vehicle) (*domain.Vehicle, error) {
	v := in
	v.ID = s.newID()
	v.IsAvailable = true
	v.CreatedAt = s.now()
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return nil, err
	}
	log.Printf("vehicle: created %s (%s %d)", v.ID, v.Summary(), v.Year)
	return &v, nil
}

// RequestUpdateOTP issues an update_vehicle code for adminID.
func (s *Service) RequestUpdateOTP(ctx context.Context, adminID string) error {
	_, err := s.otps.Generate(ctx, adminID, otpdomain.PurposeUpdateVehicle)
	return err
}

// Update applies patch to vehicle id after consuming adminID's update_vehicle code. The code
// is checked first and is spent even if the update then fails. Making a sold vehicle
// available again is refused with ErrVehicleSold.
func (s *Service) Update(ctx context.Context, adminID, id, otpCode string, patch domain.Patch) (*domain.Vehicle, error) {
	if err := s.otps.Require(ctx, adminID, otpCode, otpdomain.PurposeUpdateVehicle); err != nil {
		return nil, err
	}
	var out *domain.Vehicle
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		v, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVehicleNotFound
		}
		relist := patch.IsAvailable != nil && *patch.IsAvailable && !v.IsAvailable
		patch.Apply(v)
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrInvalidArgument, err)
		}
		if relist {
			sold, err := s.sales.HasCompleted(ctx, id)
			if err != nil {
				return err
			}
			if sold {
				return ErrVehicleSold
			}
		}
		if err := s.repo.Update(ctx, v); err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("vehicle: %s updated by %s", id, adminID)
	return out, nil
}

// Delete removes a vehicle that has never been purchased.
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrInUse) {
		return ErrVehicleInUse
	}
	if err != nil {
		return err
	}
	if !ok {
		return ErrVehicleNotFound
	}
	log.Printf("vehicle: deleted %s", id)
	return nil
}
