package rbac

import (
	"context"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dealership-backoffice/internal/server/interceptors"
)

// Authorizer decides whether a role may perform an action.
type Authorizer interface {
	Allow(ctx context.Context, role, action string) (bool, error)
}

// Require ensures the caller is authenticated and that its role may perform action.
// Returns the caller's user id on success; returns a gRPC error (Unauthenticated,
// PermissionDenied or Internal) on failure.
func Require(ctx context.Context, authz Authorizer, action string) (userID string, err error) {
	userID, okUser := interceptors.GetUserID(ctx)
	role, okRole := interceptors.GetRole(ctx)
	if !okUser || userID == "" || !okRole || role == "" {
		return "", status.Error(codes.Unauthenticated, "authentication required")
	}
	allowed, err := authz.Allow(ctx, role, action)
	if err != nil {
		log.Printf("rbac: evaluate %s for role %s: %v", action, role, err)
		return "", status.Error(codes.Internal, "failed to evaluate authorization")
	}
	if !allowed {
		return "", status.Error(codes.PermissionDenied, "role "+role+" may not perform "+action)
	}
	return userID, nil
}
