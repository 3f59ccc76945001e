package repository

import (
	"context"
	"testing"

	"dealership-backoffice/internal/purchase/domain"
)

// A nil pool panics on use, so these pass only if no query is issued.
func TestPostgresRepository_MalformedIDsMatchNothing(t *testing.T) {
	r := NewPostgresRepository(nil)
	ctx := context.Background()
	const good = "6f1c2b1e-3d4a-4c5b-9e8f-0a1b2c3d4e5f"

	for _, id := range []string{"", "42", "abc"} {
		t.Run(id, func(t *testing.T) {
			if p, err := r.GetByID(ctx, id); p != nil || err != nil {
				t.Errorf("GetByID = %v, %v, want nil, nil", p, err)
			}
			if p, err := r.GetByIDForUpdate(ctx, id); p != nil || err != nil {
				t.Errorf("GetByIDForUpdate = %v, %v, want nil, nil", p, err)
			}
			if ok, err := r.HasPending(ctx, id, good); ok || err != nil {
				t.Errorf("HasPending(bad user) = %v, %v", ok, err)
			}
			if ok, err := r.HasPending(ctx, good, id); ok || err != nil {
				t.Errorf("HasPending(bad vehicle) = %v, %v", ok, err)
			}
			if ok, err := r.HasCompleted(ctx, id); ok || err != nil {
				t.Errorf("HasCompleted = %v, %v", ok, err)
			}
			if list, err := r.ListByUser(ctx, id); len(list) != 0 || err != nil {
				t.Errorf("ListByUser = %v, %v", list, err)
			}
			if ok, err := r.Transition(ctx, id, domain.StatusPending, domain.StatusCompleted, good); ok || err != nil {
				t.Errorf("Transition = %v, %v", ok, err)
			}
		})
	}
}
