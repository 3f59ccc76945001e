package memory

import (
	"context"
	"sort"
	"time"

	userdomain "dealership-backoffice/internal/user/domain"
	userrepo "dealership-backoffice/internal/user/repository"
)

// UserRepo implements the user repository.
type UserRepo struct{ s *Store }

func (r *UserRepo) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	defer r.s.lock(ctx)()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	defer r.s.lock(ctx)()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Create(ctx context.Context, u *userdomain.User) error {
	defer r.s.lock(ctx)()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return userrepo.ErrEmailTaken
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) SetStatus(ctx context.Context, id string, status userdomain.UserStatus) error {
	defer r.s.lock(ctx)()
	u, ok := r.s.users[id]
	if !ok {
		return nil
	}
	u.Status = status
	u.UpdatedAt = time.Now().UTC()
	r.s.users[id] = u
	return nil
}

func (r *UserRepo) ListByRole(ctx context.Context, role userdomain.Role) ([]*userdomain.User, error) {
	defer r.s.lock(ctx)()
	var out []*userdomain.User
	for _, u := range r.s.users {
		if u.Role == role {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
