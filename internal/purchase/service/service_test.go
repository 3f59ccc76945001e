package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dealership-backoffice/internal/apperr"
	otpdomain "dealership-backoffice/internal/otp/domain"
	otpservice "dealership-backoffice/internal/otp/service"
	"dealership-backoffice/internal/purchase/domain"
	"dealership-backoffice/internal/store/memory"
	userdomain "dealership-backoffice/internal/user/domain"
	vehicledomain "dealership-backoffice/internal/vehicle/domain"
)

type fixture struct {
	store *memory.Store
	otps  *otpservice.Service
	svc   *Service
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.New(), now: time.Date(2025, 6, 22, 10, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return f.now }
	f.otps = otpservice.NewService(f.store.OTPs(), f.store,
		otpservice.WithRandom(rand.NewChaCha8([32]byte{1})), otpservice.WithClock(clock))
	f.svc = NewService(f.store.Purchases(), f.store.Vehicles(), f.store.Users(), f.otps, f.store)
	f.svc.SetClock(clock)

	ctx := context.Background()
	for _, u := range []*userdomain.User{
		{ID: "alice", FullName: "Alice Carter", Email: "alice@example.com", Role: userdomain.RoleCustomer},
		{ID: "bob", FullName: "Bob Diaz", Email: "bob@example.com", Role: userdomain.RoleCustomer},
		{ID: "admin", FullName: "Ada Admin", Email: "admin@example.com", Role: userdomain.RoleAdmin},
		{ID: "admin2", FullName: "Second Admin", Email: "admin2@example.com", Role: userdomain.RoleAdmin},
	} {
		if err := f.store.Users().Create(ctx, u); err != nil {
			t.Fatal(err)
		}
	}
	f.addVehicle(t, "v1", 25000, true)
	f.addVehicle(t, "v2", 18000, true)
	f.addVehicle(t, "sold", 9000, false)
	return f
}

func (f *fixture) addVehicle(t *testing.T, id string, price int64, available bool) {
	t.Helper()
	err := f.store.Vehicles().Create(context.Background(), &vehicledomain.Vehicle{
		ID: id, Make: "Toyota", Model: "Camry-" + id, Year: 2021, Price: decimal.NewFromInt(price), IsAvailable: available,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) code(t *testing.T, userID string, purpose otpdomain.Purpose) string {
	t.Helper()
	c, err := f.otps.Generate(context.Background(), userID, purpose)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return c.Plain
}

func (f *fixture) request(t *testing.T, userID, vehicleID string) (*HistoryItem, error) {
	t.Helper()
	return f.svc.RequestPurchase(context.Background(), userID, vehicleID, f.code(t, userID, otpdomain.PurposePurchase))
}

func (f *fixture) vehicle(t *testing.T, id string) *vehicledomain.Vehicle {
	t.Helper()
	v, err := f.store.Vehicles().GetByID(context.Background(), id)
	if err != nil || v == nil {
		t.Fatalf("vehicle %s: %v", id, err)
	}
	return v
}

func TestRequestPurchase_CreatesPendingWithSnapshot(t *testing.T) {
	f := newFixture(t)
	item, err := f.request(t, "alice", "v1")
	if err != nil {
		t.Fatalf("RequestPurchase: %v", err)
	}
	if item.Status != domain.StatusPending {
		t.Errorf("Status = %s, want pending", item.Status)
	}
	if !item.PriceAtPurchase.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("PriceAtPurchase = %s, want 25000", item.PriceAtPurchase)
	}
	if item.VehicleMake != "Toyota" || item.VehicleYear != 2021 {
		t.Errorf("vehicle summary = %+v", item)
	}
	if !f.vehicle(t, "v1").IsAvailable {
		t.Error("request must not change availability")
	}
}

func TestRequestPurchase_PreconditionOrder(t *testing.T) {
	testCases := []struct {
		name    string
		setup   func(t *testing.T, f *fixture) (vehicleID, code string)
		wantErr error
	}{
		{
			name: "otp checked before vehicle existence",
			setup: func(t *testing.T, f *fixture) (string, string) {
				return "missing", "000000"
			},
			wantErr: apperr.ErrInvalidOTP,
		},
		{
			name: "otp for another purpose",
			setup: func(t *testing.T, f *fixture) (string, string) {
				f.code(t, "alice", otpdomain.PurposePurchase)
				return "v1", f.code(t, "alice", otpdomain.PurposeLogin)
			},
			wantErr: apperr.ErrInvalidOTP,
		},
		{
			name: "vehicle missing",
			setup: func(t *testing.T, f *fixture) (string, string) {
				return "missing", f.code(t, "alice", otpdomain.PurposePurchase)
			},
			wantErr: ErrVehicleNotFound,
		},
		{
			name: "vehicle unavailable",
			setup: func(t *testing.T, f *fixture) (string, string) {
				return "sold", f.code(t, "alice", otpdomain.PurposePurchase)
			},
			wantErr: ErrVehicleUnavailable,
		},
		{
			name: "duplicate pending",
			setup: func(t *testing.T, f *fixture) (string, string) {
				if _, err := f.request(t, "alice", "v1"); err != nil {
					t.Fatal(err)
				}
				return "v1", f.code(t, "alice", otpdomain.PurposePurchase)
			},
			wantErr: ErrDuplicatePending,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			vehicleID, code := tc.setup(t, f)
			_, err := f.svc.RequestPurchase(context.Background(), "alice", vehicleID, code)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRequestPurchase_ErrorKinds(t *testing.T) {
	if !errors.Is(ErrDuplicatePending, apperr.ErrConflict) || !errors.Is(ErrVehicleUnavailable, apperr.ErrConflict) {
		t.Error("business rule violations should be conflicts")
	}
	if !errors.Is(ErrVehicleNotFound, apperr.ErrNotFound) || !errors.Is(ErrPurchaseNotFound, apperr.ErrNotFound) {
		t.Error("missing entities should be not found")
	}
}

func TestRequestPurchase_OTPIsConsumedEvenOnFailure(t *testing.T) {
	f := newFixture(t)
	code := f.code(t, "alice", otpdomain.PurposePurchase)
	if _, err := f.svc.RequestPurchase(context.Background(), "alice", "sold", code); !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if _, err := f.svc.RequestPurchase(context.Background(), "alice", "v1", code); !errors.Is(err, apperr.ErrInvalidOTP) {
		t.Fatalf("reused code err = %v, want ErrInvalidOTP", err)
	}
}

func TestRequestPurchase_DuplicateScope(t *testing.T) {
	f := newFixture(t)
	if _, err := f.request(t, "alice", "v1"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.request(t, "alice", "v2"); err != nil {
		t.Errorf("same user, other vehicle: %v", err)
	}
	if _, err := f.request(t, "bob", "v1"); err != nil {
		t.Errorf("other user, same vehicle: %v", err)
	}
}

type acceptAll struct{}

func (acceptAll) Validate(ctx context.Context, userID, code string, purpose otpdomain.Purpose) (bool, error) {
	return true, nil
}

func TestRequestPurchase_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store.Purchases(), f.store.Vehicles(), f.store.Users(), acceptAll{}, f.store)
	var wg sync.WaitGroup
	var ok, dup atomic.Int32
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RequestPurchase(context.Background(), "alice", "v1", "123456")
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrDuplicatePending):
				dup.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if ok.Load() != 1 || dup.Load() != 7 {
		t.Fatalf("ok = %d, duplicates = %d; want 1 and 7", ok.Load(), dup.Load())
	}
}

func TestRequestPurchase_PriceSnapshot(t *testing.T) {
	f := newFixture(t)
	item, err := f.request(t, "alice", "v1")
	if err != nil {
		t.Fatal(err)
	}
	v := f.vehicle(t, "v1")
	v.Price = decimal.NewFromInt(30000)
	_ = f.store.Vehicles().Update(context.Background(), v)

	if _, err := f.svc.CompletePurchase(context.Background(), item.ID, "admin"); err != nil {
		t.Fatal(err)
	}
	d, err := f.svc.GetDetailForAdmin(context.Background(), item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !d.PriceAtPurchase.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("PriceAtPurchase = %s, want 25000", d.PriceAtPurchase)
	}
}

func TestCompletePurchase_Scenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1, err := f.request(t, "alice", "v1")
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := f.svc.CompletePurchase(ctx, p1.ID, "admin")
	if err != nil || outcome != OutcomeCompleted {
		t.Fatalf("CompletePurchase = %v, %v; want completed", outcome, err)
	}
	if f.vehicle(t, "v1").IsAvailable {
		t.Error("vehicle should be unavailable after completion")
	}
	d, _ := f.svc.GetDetailForAdmin(ctx, p1.ID)
	if d.Status != domain.StatusCompleted || d.ProcessedByAdminID != "admin" || d.ProcessedByAdminName != "Ada Admin" {
		t.Errorf("detail = %+v", d)
	}

	outcome, err = f.svc.CompletePurchase(ctx, p1.ID, "admin2")
	if err != nil || outcome != OutcomeNotPending {
		t.Fatalf("second CompletePurchase = %v, %v; want not_pending", outcome, err)
	}
	d, _ = f.svc.GetDetailForAdmin(ctx, p1.ID)
	if d.ProcessedByAdminID != "admin" {
		t.Errorf("ProcessedByAdminID = %q, second attempt must not mutate", d.ProcessedByAdminID)
	}
}

func TestCompletePurchase_NotFound(t *testing.T) {
	f := newFixture(t)
	outcome, err := f.svc.CompletePurchase(context.Background(), "nope", "admin")
	if err != nil || outcome != OutcomeNotFound {
		t.Fatalf("CompletePurchase = %v, %v; want not_found", outcome, err)
	}
}

func TestCompletePurchase_SecondBuyerOfSameVehicleConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pa, _ := f.request(t, "alice", "v1")
	pb, _ := f.request(t, "bob", "v1")

	if o, err := f.svc.CompletePurchase(ctx, pa.ID, "admin"); err != nil || o != OutcomeCompleted {
		t.Fatalf("first completion = %v, %v", o, err)
	}
	o, err := f.svc.CompletePurchase(ctx, pb.ID, "admin2")
	if !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("second completion = %v, %v; want ErrVehicleUnavailable", o, err)
	}
	d, _ := f.svc.GetDetailForAdmin(ctx, pb.ID)
	if d.Status != domain.StatusPending || d.ProcessedByAdminID != "" {
		t.Errorf("losing purchase should stay untouched, got %+v", d)
	}
}

func TestCompletePurchase_ConcurrentSameVehicle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pa, _ := f.request(t, "alice", "v1")
	pb, _ := f.request(t, "bob", "v1")

	var completed, conflicts atomic.Int32
	var wg sync.WaitGroup
	for _, id := range []string{pa.ID, pb.ID, pa.ID, pb.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			o, err := f.svc.CompletePurchase(ctx, id, "admin")
			switch {
			case err == nil && o == OutcomeCompleted:
				completed.Add(1)
			case errors.Is(err, ErrVehicleUnavailable), err == nil && o == OutcomeNotPending:
				conflicts.Add(1)
			default:
				t.Errorf("unexpected outcome %v, %v", o, err)
			}
		}(id)
	}
	wg.Wait()
	if completed.Load() != 1 {
		t.Fatalf("completed = %d, want exactly 1", completed.Load())
	}
}

func TestRejectPurchase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.request(t, "alice", "v1")

	o, err := f.svc.RejectPurchase(ctx, p.ID, "admin")
	if err != nil || o != OutcomeRejected {
		t.Fatalf("RejectPurchase = %v, %v", o, err)
	}
	if !f.vehicle(t, "v1").IsAvailable {
		t.Error("rejection must not change availability")
	}
	if o, _ := f.svc.CompletePurchase(ctx, p.ID, "admin"); o != OutcomeNotPending {
		t.Errorf("completing a rejected purchase = %v, want not_pending", o)
	}
	if o, _ := f.svc.RejectPurchase(ctx, "nope", "admin"); o != OutcomeNotFound {
		t.Errorf("rejecting unknown purchase = %v, want not_found", o)
	}
	// A rejected request no longer blocks a new one.
	if _, err := f.request(t, "alice", "v1"); err != nil {
		t.Errorf("new request after rejection: %v", err)
	}
}

func TestHistoryAndAdminListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, _ := f.request(t, "alice", "v1")
	f.now = f.now.Add(time.Hour)
	second, _ := f.request(t, "alice", "v2")
	f.now = f.now.Add(time.Hour)
	third, _ := f.request(t, "bob", "v1")

	hist, err := f.svc.GetHistory(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 2 || hist[0].ID != second.ID || hist[1].ID != first.ID {
		t.Fatalf("history order wrong: %+v", hist)
	}
	if hist[0].VehicleModel != "Camry-v2" {
		t.Errorf("VehicleModel = %q", hist[0].VehicleModel)
	}

	all, err := f.svc.ListAllForAdmin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != third.ID || all[2].ID != first.ID {
		t.Fatalf("admin list order wrong")
	}
	if all[0].CustomerName != "Bob Diaz" || all[0].VehicleMake != "Toyota" {
		t.Errorf("admin item = %+v", all[0])
	}

	if _, err := f.svc.GetDetailForAdmin(ctx, "nope"); !errors.Is(err, ErrPurchaseNotFound) {
		t.Errorf("GetDetailForAdmin missing err = %v", err)
	}
	d, _ := f.svc.GetDetailForAdmin(ctx, first.ID)
	if d.ProcessedByAdminName != "" || d.VehicleYear != 2021 {
		t.Errorf("pending detail = %+v", d)
	}

	empty, err := f.svc.GetHistory(ctx, "admin")
	if err != nil || len(empty) != 0 {
		t.Errorf("empty history = %v, %v", empty, err)
	}
}

type failingVehicles struct {
	VehicleStore
	err error
}

func (f failingVehicles) SetAvailable(ctx context.Context, id string, available bool) error {
	return f.err
}

func TestCompletePurchase_AtomicOnStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.request(t, "alice", "v1")

	boom := errors.New("disk full")
	svc := NewService(f.store.Purchases(), failingVehicles{VehicleStore: f.store.Vehicles(), err: boom}, f.store.Users(), f.otps, f.store)
	if _, err := svc.CompletePurchase(ctx, p.ID, "admin"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want storage error", err)
	}
	d, _ := f.svc.GetDetailForAdmin(ctx, p.ID)
	if d.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending after rollback", d.Status)
	}
	if !f.vehicle(t, "v1").IsAvailable {
		t.Error("vehicle should still be available after rollback")
	}
}

func TestOutcomeString(t *testing.T) {
	for o, want := range map[Outcome]string{
		OutcomeNotFound: "not_found", OutcomeNotPending: "not_pending",
		OutcomeCompleted: "completed", OutcomeRejected: "rejected", Outcome(42): "unknown",
	} {
		if o.String() != want {
			t.Errorf("%d.String() = %q, want %q", o, o.String(), want)
		}
	}
}

func TestCompletePurchase_RelistedSoldVehicleCannotSellTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pa, _ := f.request(t, "alice", "v1")
	pb, _ := f.request(t, "bob", "v1")
	if _, err := f.svc.CompletePurchase(ctx, pa.ID, "admin"); err != nil {
		t.Fatal(err)
	}
	_ = f.store.Vehicles().SetAvailable(ctx, "v1", true)

	if _, err := f.svc.CompletePurchase(ctx, pb.ID, "admin"); !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("err = %v, want ErrVehicleUnavailable", err)
	}
	d, _ := f.svc.GetDetailForAdmin(ctx, pb.ID)
	if d.Status != domain.StatusPending {
		t.Errorf("status = %s, want pending", d.Status)
	}
}
