package handler

import (
	"context"
	"log"

	healthv1 "dealership-backoffice/api/health/v1"
)

// Pinger checks database connectivity. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker checks that the authorization policy evaluates.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server implements HealthService for readiness and liveness probes.
type Server struct {
	pinger Pinger
	policy PolicyChecker
}

// NewServer returns a new Health gRPC server. Either check may be nil to skip it.
func NewServer(pinger Pinger, policy PolicyChecker) *Server {
	return &Server{pinger: pinger, policy: policy}
}

// HealthCheck reports SERVING when every configured check passes and NOT_SERVING otherwise.
// Check failures never surface as gRPC errors.
func (s *Server) HealthCheck(ctx context.Context, req *healthv1.HealthCheckRequest) (*healthv1.HealthCheckResponse, error) {
	if s.pinger != nil {
		if err := s.pinger.PingContext(ctx); err != nil {
			log.Printf("health: database ping failed: %v", err)
			return &healthv1.HealthCheckResponse{Status: healthv1.ServingStatusNotServing}, nil
		}
	}
	if s.policy != nil {
		if err := s.policy.HealthCheck(ctx); err != nil {
			log.Printf("health: policy check failed: %v", err)
			return &healthv1.HealthCheckResponse{Status: healthv1.ServingStatusNotServing}, nil
		}
	}
	return &healthv1.HealthCheckResponse{Status: healthv1.ServingStatusServing}, nil
}
