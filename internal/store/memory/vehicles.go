package memory

import (
	"context"
	"sort"
	"strings"

	vehicledomain "dealership-backoffice/internal/vehicle/domain"
	vehiclerepo "dealership-backoffice/internal/vehicle/repository"
)

// VehicleRepo implements the vehicle repository.
type VehicleRepo struct{ s *Store }

func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*vehicledomain.Vehicle, error) {
	defer r.s.lock(ctx)()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// GetByIDForUpdate is GetByID; the store lock already isolates transactions.
func (r *VehicleRepo) GetByIDForUpdate(ctx context.Context, id string) (*vehicledomain.Vehicle, error) {
	return r.GetByID(ctx, id)
}

func (r *VehicleRepo) Search(ctx context.Context, f vehicledomain.Filter) ([]*vehicledomain.Vehicle, error) {
	defer r.s.lock(ctx)()
	var out []*vehicledomain.Vehicle
	for _, v := range r.s.vehicles {
		if matches(&v, f) {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Make != b.Make {
			return a.Make < b.Make
		}
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		return a.ID < b.ID
	})
	return out, nil
}

func matches(v *vehicledomain.Vehicle, f vehicledomain.Filter) bool {
	if f.Make != "" && !strings.Contains(strings.ToLower(v.Make), strings.ToLower(f.Make)) {
		return false
	}
	if f.Model != "" && !strings.Contains(strings.ToLower(v.Model), strings.ToLower(f.Model)) {
		return false
	}
	if f.MinYear > 0 && v.Year < f.MinYear {
		return false
	}
	if f.MaxYear > 0 && v.Year > f.MaxYear {
		return false
	}
	if f.MinPrice != nil && v.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && v.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return !f.AvailableOnly || v.IsAvailable
}

func (r *VehicleRepo) Create(ctx context.Context, v *vehicledomain.Vehicle) error {
	defer r.s.lock(ctx)()
	r.s.vehicles[v.ID] = *v
	return nil
}

func (r *VehicleRepo) Update(ctx context.Context, v *vehicledomain.Vehicle) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.vehicles[v.ID]; ok {
		r.s.vehicles[v.ID] = *v
	}
	return nil
}

func (r *VehicleRepo) Delete(ctx context.Context, id string) (bool, error) {
	defer r.s.lock(ctx)()
	if _, ok := r.s.vehicles[id]; !ok {
		return false, nil
	}
	for _, p := range r.s.purchases {
		if p.VehicleID == id {
			return false, vehiclerepo.ErrInUse
		}
	}
	delete(r.s.vehicles, id)
	return true, nil
}

func (r *VehicleRepo) SetAvailable(ctx context.Context, id string, available bool) error {
	defer r.s.lock(ctx)()
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil
	}
	v.IsAvailable = available
	r.s.vehicles[id] = v
	return nil
}
