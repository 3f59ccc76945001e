package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dealership-backoffice/internal/apperr"
	otpdomain "dealership-backoffice/internal/otp/domain"
	"dealership-backoffice/internal/purchase/domain"
	purchaserepo "dealership-backoffice/internal/purchase/repository"
	userdomain "dealership-backoffice/internal/user/domain"
	vehicledomain "dealership-backoffice/internal/vehicle/domain"
)

// Business errors. Each wraps an apperr kind so handlers can map it.
var (
	ErrVehicleNotFound    = fmt.Errorf("%w: vehicle not found", apperr.ErrNotFound)
	ErrPurchaseNotFound   = fmt.Errorf("%w: purchase not found", apperr.ErrNotFound)
	ErrVehicleUnavailable = fmt.Errorf("%w: vehicle not available", apperr.ErrConflict)
	ErrDuplicatePending   = fmt.Errorf("%w: duplicate pending request", apperr.ErrConflict)
)

// Outcome is the result of an admin decision on a purchase.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeNotPending
	OutcomeCompleted
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeNotPending:
		return "not_pending"
	case OutcomeCompleted:
		return "completed"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

// OTPValidator consumes a one-time code.
type OTPValidator interface {
	Validate(ctx context.Context, userID, code string, purpose otpdomain.Purpose) (bool, error)
}

// VehicleStore is the part of the vehicle repository the workflow needs.
type VehicleStore interface {
	GetByID(ctx context.Context, id string) (*vehicledomain.Vehicle, error)
	GetByIDForUpdate(ctx context.Context, id string) (*vehicledomain.Vehicle, error)
	SetAvailable(ctx context.Context, id string, available bool) error
}

// UserStore resolves display names.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Transactor runs fn in a single storage transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// HistoryItem is a purchase as the requesting customer sees it.
type HistoryItem struct {
	ID              string
	VehicleID       string
	VehicleMake     string
	VehicleModel    string
	VehicleYear     int
	PriceAtPurchase decimal.Decimal
	Status          domain.Status
	PurchaseDate    time.Time
}

// AdminListItem is a purchase joined with customer and vehicle display fields.
type AdminListItem struct {
	ID              string
	UserID          string
	CustomerName    string
	VehicleID       string
	VehicleMake     string
	VehicleModel    string
	PriceAtPurchase decimal.Decimal
	Status          domain.Status
	PurchaseDate    time.Time
}

// AdminDetail adds the vehicle year and the processing admin to AdminListItem.
type AdminDetail struct {
	AdminListItem
	VehicleYear          int
	ProcessedByAdminID   string
	ProcessedByAdminName string
}

// Service is the purchase request and approval workflow.
type Service struct {
	purchases purchaserepo.Repository
	vehicles  VehicleStore
	users     UserStore
	otps      OTPValidator
	tx        Transactor
	now       func() time.Time
	newID     func() string
}

// NewService returns a purchase workflow service.
func NewService(purchases purchaserepo.Repository, vehicles VehicleStore, users UserStore, otps OTPValidator, tx Transactor) *Service {
	return &Service{
		purchases: purchases,
		vehicles:  vehicles,
		users:     users,
		otps:      otps,
		tx:        tx,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// SetClock replaces time.Now for purchase dates.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// RequestPurchase records a pending purchase of vehicleID by userID at the vehicle's current
// price. Checks run in order and the first failure wins: purchase OTP, vehicle exists,
// vehicle available, no pending request for the same pair. The OTP is consumed even when a
// later check fails. Vehicle availability is not changed.
func (s *Service) RequestPurchase(ctx context.Context, userID, vehicleID, otpCode string) (*HistoryItem, error) {
	ok, err := s.otps.Validate(ctx, userID, otpCode, otpdomain.PurposePurchase)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrInvalidOTP
	}

	var (
		p *domain.Purchase
		v *vehicledomain.Vehicle
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		v, err = s.vehicles.GetByIDForUpdate(ctx, vehicleID)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVehicleNotFound
		}
		if !v.IsAvailable {
			return ErrVehicleUnavailable
		}
		pending, err := s.purchases.HasPending(ctx, userID, vehicleID)
		if err != nil {
			return err
		}
		if pending {
			return ErrDuplicatePending
		}
		p = &domain.Purchase{
			ID:              s.newID(),
			UserID:          userID,
			VehicleID:       vehicleID,
			PurchaseDate:    s.now(),
			PriceAtPurchase: v.Price,
			Status:          domain.StatusPending,
		}
		if err := s.purchases.Create(ctx, p); err != nil {
			if errors.Is(err, purchaserepo.ErrPendingExists) {
				return ErrDuplicatePending
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return historyItem(p, v), nil
}

// GetHistory returns userID's purchases, newest first.
func (s *Service) GetHistory(ctx context.Context, userID string) ([]*HistoryItem, error) {
	list, err := s.purchases.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	j := s.newJoiner()
	out := make([]*HistoryItem, 0, len(list))
	for _, p := range list {
		v, err := j.vehicle(ctx, p.VehicleID)
		if err != nil {
			return nil, err
		}
		out = append(out, historyItem(p, v))
	}
	return out, nil
}

// ListAllForAdmin returns every purchase with customer and vehicle fields, newest first.
func (s *Service) ListAllForAdmin(ctx context.Context) ([]*AdminListItem, error) {
	list, err := s.purchases.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	j := s.newJoiner()
	out := make([]*AdminListItem, 0, len(list))
	for _, p := range list {
		item, _, err := j.adminItem(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// GetDetailForAdmin returns one purchase or ErrPurchaseNotFound.
func (s *Service) GetDetailForAdmin(ctx context.Context, purchaseID string) (*AdminDetail, error) {
	p, err := s.purchases.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPurchaseNotFound
	}
	j := s.newJoiner()
	item, v, err := j.adminItem(ctx, p)
	if err != nil {
		return nil, err
	}
	d := &AdminDetail{AdminListItem: *item, ProcessedByAdminID: p.ProcessedByAdminID}
	if v != nil {
		d.VehicleYear = v.Year
	}
	if p.ProcessedByAdminID != "" {
		if d.ProcessedByAdminName, err = j.userName(ctx, p.ProcessedByAdminID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// CompletePurchase moves a pending purchase to completed and marks its vehicle unavailable
// in the same transaction. A purchase that is not pending is left untouched. If another
// purchase of the same vehicle was completed first, ErrVehicleUnavailable is returned and
// nothing changes.
func (s *Service) CompletePurchase(ctx context.Context, purchaseID, adminID string) (Outcome, error) {
	return s.decide(ctx, purchaseID, adminID, domain.StatusCompleted)
}

// RejectPurchase moves a pending purchase to rejected. Vehicle availability is not touched.
func (s *Service) RejectPurchase(ctx context.Context, purchaseID, adminID string) (Outcome, error) {
	return s.decide(ctx, purchaseID, adminID, domain.StatusRejected)
}

func (s *Service) decide(ctx context.Context, purchaseID, adminID string, to domain.Status) (Outcome, error) {
	outcome := OutcomeNotFound
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.purchases.GetByIDForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			outcome = OutcomeNotFound
			return nil
		}
		if !domain.CanTransition(p.Status, to) {
			outcome = OutcomeNotPending
			return nil
		}
		if to == domain.StatusCompleted {
			v, err := s.vehicles.GetByIDForUpdate(ctx, p.VehicleID)
			if err != nil {
				return err
			}
			if v == nil {
				return ErrVehicleNotFound
			}
			if !v.IsAvailable {
				return ErrVehicleUnavailable
			}
		}
		changed, err := s.purchases.Transition(ctx, p.ID, p.Status, to, adminID)
		if errors.Is(err, purchaserepo.ErrVehicleSold) {
			return ErrVehicleUnavailable
		}
		if err != nil {
			return err
		}
		if !changed {
			outcome = OutcomeNotPending
			return nil
		}
		if to == domain.StatusCompleted {
			if err := s.vehicles.SetAvailable(ctx, p.VehicleID, false); err != nil {
				return err
			}
			outcome = OutcomeCompleted
		} else {
			outcome = OutcomeRejected
		}
		return nil
	})
	if err != nil {
		return OutcomeNotFound, err
	}
	return outcome, nil
}

func historyItem(p *domain.Purchase, v *vehicledomain.Vehicle) *HistoryItem {
	h := &HistoryItem{
		ID:              p.ID,
		VehicleID:       p.VehicleID,
		PriceAtPurchase: p.PriceAtPurchase,
		Status:          p.Status,
		PurchaseDate:    p.PurchaseDate,
	}
	if v != nil {
		h.VehicleMake, h.VehicleModel, h.VehicleYear = v.Make, v.Model, v.Year
	}
	return h
}

// joiner caches collaborator lookups for one call.
type joiner struct {
	s        *Service
	vehicles map[string]*vehicledomain.Vehicle
	names    map[string]string
}

func (s *Service) newJoiner() *joiner {
	return &joiner{s: s, vehicles: map[string]*vehicledomain.Vehicle{}, names: map[string]string{}}
}

func (j *joiner) vehicle(ctx context.Context, id string) (*vehicledomain.Vehicle, error) {
	if v, ok := j.vehicles[id]; ok {
		return v, nil
	}
	v, err := j.s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	j.vehicles[id] = v
	return v, nil
}

func (j *joiner) userName(ctx context.Context, id string) (string, error) {
	if n, ok := j.names[id]; ok {
		return n, nil
	}
	u, err := j.s.users.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	name := ""
	if u != nil {
		name = u.FullName
	}
	j.names[id] = name
	return name, nil
}

func (j *joiner) adminItem(ctx context.Context, p *domain.Purchase) (*AdminListItem, *vehicledomain.Vehicle, error) {
	v, err := j.vehicle(ctx, p.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	name, err := j.userName(ctx, p.UserID)
	if err != nil {
		return nil, nil, err
	}
	item := &AdminListItem{
		ID:              p.ID,
		UserID:          p.UserID,
		CustomerName:    name,
		VehicleID:       p.VehicleID,
		PriceAtPurchase: p.PriceAtPurchase,
		Status:          p.Status,
		PurchaseDate:    p.PurchaseDate,
	}
	if v != nil {
		item.VehicleMake, item.VehicleModel = v.Make, v.Model
	}
	return item, v, nil
}
