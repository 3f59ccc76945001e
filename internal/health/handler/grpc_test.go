package handler

import (
	"context"
	"errors"
	"testing"

	healthv1 "dealership-backoffice/api/health/v1"
	"dealership-backoffice/internal/policy/engine"
	"dealership-backoffice/internal/store/memory"
)

type mockPinger struct {
	pingErr error
}

func (m *mockPinger) PingContext(context.Context) error {
	return m.pingErr
}

type mockPolicyChecker struct {
	healthErr error
}

func (m *mockPolicyChecker) HealthCheck(context.Context) error {
	return m.healthErr
}

func TestHealthCheck(t *testing.T) {
	testCases := []struct {
		name   string
		pinger Pinger
		policy PolicyChecker
		want   healthv1.ServingStatus
	}{
		{"no checks", nil, nil, healthv1.ServingStatusServing},
		{"ping ok", &mockPinger{}, nil, healthv1.ServingStatusServing},
		{"ping fails", &mockPinger{pingErr: errors.New("connection refused")}, nil, healthv1.ServingStatusNotServing},
		{"policy ok", nil, &mockPolicyChecker{}, healthv1.ServingStatusServing},
		{"policy fails", nil, &mockPolicyChecker{healthErr: errors.New("rego compile failed")}, healthv1.ServingStatusNotServing},
		{"ping ok policy fails", &mockPinger{}, &mockPolicyChecker{healthErr: errors.New("policy error")}, healthv1.ServingStatusNotServing},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := NewServer(tc.pinger, tc.policy).HealthCheck(context.Background(), &healthv1.HealthCheckRequest{})
			if err != nil {
				t.Fatalf("HealthCheck must not return a gRPC error: %v", err)
			}
			if resp.Status != tc.want {
				t.Errorf("status = %v, want %v", resp.Status, tc.want)
			}
		})
	}
}

func TestHealthCheck_RealDependencies(t *testing.T) {
	ctx := context.Background()
	authz, err := engine.NewOPAEvaluator(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	resp, err := NewServer(memory.New(), authz).HealthCheck(ctx, &healthv1.HealthCheckRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != healthv1.ServingStatusServing {
		t.Errorf("status = %v, want SERVING", resp.Status)
	}
}
