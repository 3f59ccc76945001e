package handler

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	vehiclev1 "dealership-backoffice/api/vehicle/v1"
	otpdomain "dealership-backoffice/internal/otp/domain"
	otpservice "dealership-backoffice/internal/otp/service"
	"dealership-backoffice/internal/policy/engine"
	"dealership-backoffice/internal/server/interceptors"
	"dealership-backoffice/internal/store/memory"
	"dealership-backoffice/internal/vehicle/service"
)

type inbox struct {
	mu   sync.Mutex
	last map[string]string
}

func (b *inbox) Deliver(ctx context.Context, userID, code string, purpose otpdomain.Purpose) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last[userID] = code
	return nil
}

type auditEvent struct{ userID, action, metadata string }

type recordingAudit struct {
	events []auditEvent
}

func (r *recordingAudit) LogEvent(ctx context.Context, userID, action, resource, metadata string) {
	r.events = append(r.events, auditEvent{userID, action, metadata})
}

type fixture struct {
	srv   *Server
	otps  *otpservice.Service
	box   *inbox
	audit *recordingAudit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	box := &inbox{last: map[string]string{}}
	otps := otpservice.NewService(store.OTPs(), store, otpservice.WithNotifier(box))
	authz, err := engine.NewOPAEvaluator(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	rec := &recordingAudit{}
	svc := service.NewService(store.Vehicles(), store.Purchases(), otps, store)
	return &fixture{srv: NewServer(svc, authz, rec), otps: otps, box: box, audit: rec}
}

var (
	adminCtx    = interceptors.WithIdentity(context.Background(), "admin-1", "admin")
	customerCtx = interceptors.WithIdentity(context.Background(), "cust-1", "customer")
)

func (f *fixture) create(t *testing.T, mk, model string, year int, price int64) *vehiclev1.Vehicle {
	t.Helper()
	v, err := f.srv.CreateVehicle(adminCtx, &vehiclev1.CreateVehicleRequest{
		Make: mk, Model: model, Year: year, Price: decimal.NewFromInt(price),
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	return v
}

func TestServer_CreateAndSearch(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "Toyota", "Camry", 2021, 25000)
	f.create(t, "Honda", "Civic", 2019, 18000)
	if !created.IsAvailable || created.ID == "" {
		t.Errorf("created = %+v", created)
	}

	floor := decimal.NewFromInt(20000)
	resp, err := f.srv.SearchVehicles(customerCtx, &vehiclev1.SearchVehiclesRequest{MinPrice: &floor})
	if err != nil {
		t.Fatalf("SearchVehicles: %v", err)
	}
	if len(resp.Vehicles) != 1 || resp.Vehicles[0].Model != "Camry" {
		t.Errorf("vehicles = %+v", resp.Vehicles)
	}
	got, err := f.srv.GetVehicle(customerCtx, &vehiclev1.GetVehicleRequest{ID: created.ID})
	if err != nil || got.Make != "Toyota" {
		t.Fatalf("GetVehicle = %+v, %v", got, err)
	}
	if len(f.audit.events) != 2 || f.audit.events[0].action != "vehicle_created" {
		t.Errorf("audit = %+v", f.audit.events)
	}
}

func TestServer_Authorization(t *testing.T) {
	f := newFixture(t)
	testCases := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"customer cannot create", func() error {
			_, err := f.srv.CreateVehicle(customerCtx, &vehiclev1.CreateVehicleRequest{Make: "A", Model: "B", Year: 2020})
			return err
		}, codes.PermissionDenied},
		{"customer cannot delete", func() error {
			_, err := f.srv.DeleteVehicle(customerCtx, &vehiclev1.DeleteVehicleRequest{ID: "x"})
			return err
		}, codes.PermissionDenied},
		{"customer cannot request update otp", func() error {
			_, err := f.srv.RequestUpdateOTP(customerCtx, &vehiclev1.RequestUpdateOTPRequest{})
			return err
		}, codes.PermissionDenied},
		{"anonymous search", func() error {
			_, err := f.srv.SearchVehicles(context.Background(), &vehiclev1.SearchVehiclesRequest{})
			return err
		}, codes.Unauthenticated},
		{"invalid vehicle", func() error {
			_, err := f.srv.CreateVehicle(adminCtx, &vehiclev1.CreateVehicleRequest{Make: "A", Model: "B", Year: 1800})
			return err
		}, codes.InvalidArgument},
		{"missing vehicle", func() error {
			_, err := f.srv.GetVehicle(customerCtx, &vehiclev1.GetVehicleRequest{ID: "nope"})
			return err
		}, codes.NotFound},
		{"update without otp", func() error {
			_, err := f.srv.UpdateVehicle(adminCtx, &vehiclev1.UpdateVehicleRequest{ID: "x"})
			return err
		}, codes.InvalidArgument},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := status.Code(tc.call()); got != tc.want {
				t.Errorf("code = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestServer_UpdateWithOTP(t *testing.T) {
	f := newFixture(t)
	v := f.create(t, "Toyota", "Camry", 2021, 25000)

	if _, err := f.srv.RequestUpdateOTP(adminCtx, &vehiclev1.RequestUpdateOTPRequest{}); err != nil {
		t.Fatalf("RequestUpdateOTP: %v", err)
	}
	f.otps.Wait()
	code := f.box.last["admin-1"]

	price := decimal.NewFromInt(23500)
	updated, err := f.srv.UpdateVehicle(adminCtx, &vehiclev1.UpdateVehicleRequest{ID: v.ID, OTPCode: code, Price: &price})
	if err != nil {
		t.Fatalf("UpdateVehicle: %v", err)
	}
	if !updated.Price.Equal(price) || updated.Model != "Camry" {
		t.Errorf("updated = %+v", updated)
	}
	_, err = f.srv.UpdateVehicle(adminCtx, &vehiclev1.UpdateVehicleRequest{ID: v.ID, OTPCode: code, Price: &price})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("reused code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestServer_Delete(t *testing.T) {
	f := newFixture(t)
	v := f.create(t, "Toyota", "Camry", 2021, 25000)
	if _, err := f.srv.DeleteVehicle(adminCtx, &vehiclev1.DeleteVehicleRequest{ID: v.ID}); err != nil {
		t.Fatalf("DeleteVehicle: %v", err)
	}
	if _, err := f.srv.DeleteVehicle(adminCtx, &vehiclev1.DeleteVehicleRequest{ID: v.ID}); status.Code(err) != codes.NotFound {
		t.Errorf("second delete = %v, want NotFound", status.Code(err))
	}
}

func TestServer_NilService(t *testing.T) {
	srv := NewServer(nil, nil, nil)
	if _, err := srv.SearchVehicles(customerCtx, &vehiclev1.SearchVehiclesRequest{}); status.Code(err) != codes.Unimplemented {
		t.Errorf("code = %v, want Unimplemented", status.Code(err))
	}
}
