package repository

import (
	"context"
	"testing"

	"dealership-backoffice/internal/user/domain"
)

func TestPostgresRepository_MalformedIDsMatchNothing(t *testing.T) {
	r := NewPostgresRepository(nil)
	ctx := context.Background()
	for _, id := range []string{"", "x", "42"} {
		if u, err := r.GetByID(ctx, id); u != nil || err != nil {
			t.Errorf("GetByID(%q) = %v, %v, want nil, nil", id, u, err)
		}
		if err := r.SetStatus(ctx, id, domain.UserStatusActive); err != nil {
			t.Errorf("SetStatus(%q): %v", id, err)
		}
	}
}
