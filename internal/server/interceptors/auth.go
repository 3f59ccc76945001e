package interceptors

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TokenValidator checks an access token and returns its subject and role.
type TokenValidator interface {
	ValidateAccess(token string) (userID, role string, err error)
}

// MethodSet is a set of full gRPC method names.
type MethodSet map[string]bool

// Has reports whether fullMethod is in the set. A nil set is empty.
func (m MethodSet) Has(fullMethod string) bool { return m[fullMethod] }

var errUnauthenticated = status.Error(codes.Unauthenticated, "missing or invalid authorization")

// AuthUnary resolves the caller from the Bearer access token in the request metadata.
// Calls outside public need a valid token. Public calls always run and carry the identity
// only when the token checks out, so a customer can still log in with a stale token.
func AuthUnary(tokens TokenValidator, public MethodSet) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id, ok := authenticate(ctx, tokens)
		switch {
		case ok:
			return handler(WithIdentity(ctx, id.UserID, id.Role), req)
		case public.Has(info.FullMethod):
			return handler(ctx, req)
		default:
			return nil, errUnauthenticated
		}
	}
}

func authenticate(ctx context.Context, tokens TokenValidator) (Identity, bool) {
	token, ok := bearerToken(ctx)
	if !ok {
		return Identity{}, false
	}
	userID, role, err := tokens.ValidateAccess(token)
	if err != nil || userID == "" {
		return Identity{}, false
	}
	return Identity{UserID: userID, Role: role}, true
}

// bearerToken reads "authorization: Bearer <token>". The scheme is case-insensitive.
func bearerToken(ctx context.Context) (string, bool) {
	md, _ := metadata.FromIncomingContext(ctx)
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", false
	}
	scheme, token, found := strings.Cut(strings.TrimSpace(vals[0]), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
