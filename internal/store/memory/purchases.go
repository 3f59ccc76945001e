package memory

import (
	"context"
	"sort"

	purchasedomain "dealership-backoffice/internal/purchase/domain"
	purchaserepo "dealership-backoffice/internal/purchase/repository"
)

// PurchaseRepo implements the purchase repository.
type PurchaseRepo struct{ s *Store }

func (r *PurchaseRepo) Create(ctx context.Context, p *purchasedomain.Purchase) error {
	defer r.s.lock(ctx)()
	if p.Status == purchasedomain.StatusPending && r.s.hasPending(p.UserID, p.VehicleID) {
		return purchaserepo.ErrPendingExists
	}
	r.s.purchases[p.ID] = *p
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*purchasedomain.Purchase, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetByIDForUpdate is GetByID; the store lock already isolates transactions.
func (r *PurchaseRepo) GetByIDForUpdate(ctx context.Context, id string) (*purchasedomain.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepo) HasPending(ctx context.Context, userID, vehicleID string) (bool, error) {
	defer r.s.lock(ctx)()
	return r.s.hasPending(userID, vehicleID), nil
}

func (s *Store) hasPending(userID, vehicleID string) bool {
	for _, p := range s.purchases {
		if p.UserID == userID && p.VehicleID == vehicleID && p.Status == purchasedomain.StatusPending {
			return true
		}
	}
	return false
}

func (r *PurchaseRepo) HasCompleted(ctx context.Context, vehicleID string) (bool, error) {
	defer r.s.lock(ctx)()
	return r.s.hasCompleted(vehicleID, ""), nil
}

func (s *Store) hasCompleted(vehicleID, exceptID string) bool {
	for id, p := range s.purchases {
		if id != exceptID && p.VehicleID == vehicleID && p.Status == purchasedomain.StatusCompleted {
			return true
		}
	}
	return false
}

func (r *PurchaseRepo) ListByUser(ctx context.Context, userID string) ([]*purchasedomain.Purchase, error) {
	defer r.s.lock(ctx)()
	return r.s.listPurchases(func(p *purchasedomain.Purchase) bool { return p.UserID == userID }), nil
}

func (r *PurchaseRepo) ListAll(ctx context.Context) ([]*purchasedomain.Purchase, error) {
	defer r.s.lock(ctx)()
	return r.s.listPurchases(func(*purchasedomain.Purchase) bool { return true }), nil
}

func (s *Store) listPurchases(keep func(*purchasedomain.Purchase) bool) []*purchasedomain.Purchase {
	var out []*purchasedomain.Purchase
	for _, p := range s.purchases {
		if keep(&p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.After(out[j].PurchaseDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *PurchaseRepo) Transition(ctx context.Context, id string, from, to purchasedomain.Status, adminID string) (bool, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.purchases[id]
	if !ok || p.Status != from {
		return false, nil
	}
	if to == purchasedomain.StatusCompleted && r.s.hasCompleted(p.VehicleID, id) {
		return false, purchaserepo.ErrVehicleSold
	}
	p.Status = to
	p.ProcessedByAdminID = adminID
	r.s.purchases[id] = p
	return true, nil
}
