package interceptors

import "context"

// Identity is the authenticated caller of an RPC.
type Identity struct {
	UserID string
	Role   string
}

type identityKey struct{}

// WithIdentity returns ctx carrying the caller's user id and role.
func WithIdentity(ctx context.Context, userID, role string) context.Context {
	return context.WithValue(ctx, identityKey{}, Identity{UserID: userID, Role: role})
}

// IdentityFrom returns the caller set by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func GetUserID(ctx context.Context) (string, bool) {
	id, ok := IdentityFrom(ctx)
	return id.UserID, ok
}

func GetRole(ctx context.Context) (string, bool) {
	id, ok := IdentityFrom(ctx)
	return id.Role, ok
}
