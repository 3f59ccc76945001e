package interceptors

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dealership-backoffice/internal/telemetry"
	"dealership-backoffice/internal/telemetry/domain"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []*domain.Event
}

func (r *recordingEmitter) Emit(ctx context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func TestTelemetryUnary(t *testing.T) {
	em := &recordingEmitter{}
	skip := map[string]bool{"/h.HealthService/HealthCheck": true}
	interceptor := TelemetryUnary(em, skip)
	ctx := WithIdentity(context.Background(), "user-1", "customer")

	_, err := interceptor(ctx, "req", &grpc.UnaryServerInfo{FullMethod: "/p.PurchaseService/GetHistory"},
		func(ctx context.Context, req any) (any, error) { return nil, status.Error(codes.Internal, "x") })
	if status.Code(err) != codes.Internal {
		t.Fatalf("err = %v", err)
	}
	_, _ = interceptor(ctx, "req", &grpc.UnaryServerInfo{FullMethod: "/h.HealthService/HealthCheck"},
		func(ctx context.Context, req any) (any, error) { return "ok", nil })
	if !telemetry.Drain() {
		t.Fatal("emits did not drain")
	}

	em.mu.Lock()
	defer em.mu.Unlock()
	if len(em.events) != 1 {
		t.Fatalf("events = %d, want 1", len(em.events))
	}
	e := em.events[0]
	if e.UserID != "user-1" || e.Role != "customer" || e.EventType != "grpc_request" {
		t.Errorf("event = %+v", e)
	}
	var meta grpcRequestMetadata
	if err := json.Unmarshal(e.Metadata, &meta); err != nil {
		t.Fatal(err)
	}
	if meta.FullMethod != "/p.PurchaseService/GetHistory" || meta.StatusCode != "Internal" {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestTelemetryUnary_NilEmitter(t *testing.T) {
	resp, err := TelemetryUnary(nil, nil)(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/a.B/C"},
		func(ctx context.Context, req any) (any, error) { return "ok", nil })
	if err != nil || resp != "ok" {
		t.Fatalf("resp, err = %v, %v", resp, err)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mk := func(name string) grpc.UnaryServerInterceptor {
		return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, h grpc.UnaryHandler) (any, error) {
			order = append(order, name)
			return h(ctx, req)
		}
	}
	_, _ = Chain(mk("a"), mk("b"), mk("c"))(context.Background(), nil, &grpc.UnaryServerInfo{},
		func(ctx context.Context, req any) (any, error) {
			order = append(order, "handler")
			return nil, nil
		})
	want := []string{"a", "b", "c", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
