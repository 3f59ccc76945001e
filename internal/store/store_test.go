package store

import (
	"context"
	"testing"

	userdomain "dealership-backoffice/internal/user/domain"
)

func TestOpen_EmptyDSNIsMemory(t *testing.T) {
	b, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if !b.InMemory {
		t.Error("InMemory = false, want true")
	}
	ctx := context.Background()
	if err := b.Pinger.PingContext(ctx); err != nil {
		t.Errorf("PingContext: %v", err)
	}
	err = b.Tx.WithinTx(ctx, func(ctx context.Context) error {
		return b.Users.Create(ctx, &userdomain.User{ID: "u1", Email: "a@example.com", FullName: "A", Role: userdomain.RoleCustomer})
	})
	if err != nil {
		t.Fatal(err)
	}
	u, err := b.Users.GetByID(ctx, "u1")
	if err != nil || u == nil {
		t.Fatalf("GetByID = %v, %v", u, err)
	}
}
