package server

import (
	"google.golang.org/grpc"

	auditv1 "dealership-backoffice/api/audit/v1"
	authv1 "dealership-backoffice/api/auth/v1"
	devv1 "dealership-backoffice/api/dev/v1"
	healthv1 "dealership-backoffice/api/health/v1"
	purchasev1 "dealership-backoffice/api/purchase/v1"
	vehiclev1 "dealership-backoffice/api/vehicle/v1"

	"dealership-backoffice/internal/audit"
	audithandler "dealership-backoffice/internal/audit/handler"
	auditrepo "dealership-backoffice/internal/audit/repository"
	healthhandler "dealership-backoffice/internal/health/handler"
	identityhandler "dealership-backoffice/internal/identity/handler"
	identityservice "dealership-backoffice/internal/identity/service"
	"dealership-backoffice/internal/platform/rbac"
	purchasehandler "dealership-backoffice/internal/purchase/handler"
	purchaseservice "dealership-backoffice/internal/purchase/service"
	"dealership-backoffice/internal/server/interceptors"
	"dealership-backoffice/internal/telemetry"
	vehiclehandler "dealership-backoffice/internal/vehicle/handler"
	vehicleservice "dealership-backoffice/internal/vehicle/service"
)

// Deps holds optional service dependencies for gRPC handlers.
type Deps struct {
	// Auth is the auth service for the register and login steps. If nil, auth RPCs return Unimplemented.
	Auth *identityservice.AuthService
	// Vehicles is the inventory service. If nil, vehicle RPCs return Unimplemented.
	Vehicles *vehicleservice.Service
	// Purchases is the purchase workflow. If nil, purchase RPCs return Unimplemented.
	Purchases *purchaseservice.Service
	// OTPs issues purchase codes for RequestPurchaseOTP.
	OTPs purchasehandler.OTPGenerator
	// Authz decides role/action pairs for every protected RPC.
	Authz rbac.Authorizer
	// AuditRepo backs ListAuditLogs. If nil, ListAuditLogs returns Unimplemented.
	AuditRepo auditrepo.Repository
	// AuditLogger records business events from handlers. May be nil.
	AuditLogger audit.AuditLogger
	// HealthPinger is used by HealthService for readiness (e.g. *sql.DB). If nil, HealthCheck skips DB ping.
	HealthPinger healthhandler.Pinger
	// HealthPolicyChecker is used by HealthService for readiness (e.g. OPA evaluator). If nil, HealthCheck skips policy check.
	HealthPolicyChecker healthhandler.PolicyChecker
	// DevOTPHandler is the dev-only DevService (GetOTP). If nil, DevService is not registered.
	DevOTPHandler devv1.DevServiceServer
}

// Handlers are the service implementations shared by the gRPC server and the HTTP gateway.
type Handlers struct {
	Auth      authv1.AuthServiceServer
	Vehicles  vehiclev1.VehicleServiceServer
	Purchases purchasev1.PurchaseServiceServer
	Audit     auditv1.AuditServiceServer
	Health    healthv1.HealthServiceServer
	// Dev is nil unless the dev OTP service is enabled.
	Dev devv1.DevServiceServer
}

// NewHandlers builds every service implementation from deps.
func NewHandlers(deps Deps) *Handlers {
	return &Handlers{
		Auth:      identityhandler.NewAuthServer(deps.Auth, deps.Authz),
		Vehicles:  vehiclehandler.NewServer(deps.Vehicles, deps.Authz, deps.AuditLogger),
		Purchases: purchasehandler.NewServer(deps.Purchases, deps.OTPs, deps.Authz, deps.AuditLogger),
		Audit:     audithandler.NewServer(deps.AuditRepo, deps.Authz),
		Health:    healthhandler.NewServer(deps.HealthPinger, deps.HealthPolicyChecker),
		Dev:       deps.DevOTPHandler,
	}
}

// RegisterServices registers all services with the given server.
//
// Service → handler mapping:
//   - AuthService     → internal/identity/handler
//   - VehicleService  → internal/vehicle/handler
//   - PurchaseService → internal/purchase/handler
//   - AuditService    → internal/audit/handler
//   - HealthService   → internal/health/handler
//   - DevService      → internal/devotp/handler (dev only)
func RegisterServices(s grpc.ServiceRegistrar, h *Handlers) {
	authv1.RegisterAuthServiceServer(s, h.Auth)
	vehiclev1.RegisterVehicleServiceServer(s, h.Vehicles)
	purchasev1.RegisterPurchaseServiceServer(s, h.Purchases)
	auditv1.RegisterAuditServiceServer(s, h.Audit)
	healthv1.RegisterHealthServiceServer(s, h.Health)
	if h.Dev != nil {
		devv1.RegisterDevServiceServer(s, h.Dev)
	}
}

// PublicMethods are callable without a bearer token.
func PublicMethods() interceptors.MethodSet {
	return interceptors.MethodSet{
		authv1.AuthService_RegisterRequestOTP_FullMethodName: true,
		authv1.AuthService_RegisterVerifyOTP_FullMethodName:  true,
		authv1.AuthService_LoginRequestOTP_FullMethodName:    true,
		authv1.AuthService_LoginVerifyOTP_FullMethodName:     true,
		healthv1.HealthService_HealthCheck_FullMethodName:    true,
		devv1.DevService_GetOTP_FullMethodName:               true,
	}
}

// quietMethods are neither audited nor emitted as telemetry by the interceptors.
func quietMethods() interceptors.MethodSet {
	return interceptors.MethodSet{
		healthv1.HealthService_HealthCheck_FullMethodName: true,
		auditv1.AuditService_ListAuditLogs_FullMethodName: true,
		devv1.DevService_GetOTP_FullMethodName:            true,
	}
}

// Interceptor returns the unary chain every call passes through: telemetry outermost, then
// bearer authentication, then the per-call audit record. emitter and auditLogger may be nil.
func Interceptor(tokens interceptors.TokenValidator, auditLogger audit.AuditLogger, emitter telemetry.EventEmitter) grpc.UnaryServerInterceptor {
	quiet := quietMethods()
	return interceptors.Chain(
		interceptors.TelemetryUnary(emitter, quiet),
		interceptors.AuthUnary(tokens, PublicMethods()),
		interceptors.AuditUnary(auditLogger, quiet),
	)
}
