package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"dealership-backoffice/internal/security"
)

func withBearer(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
}

func TestAuthUnary(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	token, _, err := tokens.IssueAccess("user-1", "admin")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	publicMethods := map[string]bool{"/test.Service/Public": true}
	interceptor := AuthUnary(tokens, publicMethods)

	testCases := []struct {
		name     string
		ctx      context.Context
		method   string
		wantCode codes.Code
		wantUser string
		wantRole string
	}{
		{"public without token", context.Background(), "/test.Service/Public", codes.OK, "", ""},
		{"public with bad token", withBearer("garbage"), "/test.Service/Public", codes.OK, "", ""},
		{"public with token", withBearer(token), "/test.Service/Public", codes.OK, "user-1", "admin"},
		{"protected without token", context.Background(), "/test.Service/Private", codes.Unauthenticated, "", ""},
		{"protected with bad token", withBearer("garbage"), "/test.Service/Private", codes.Unauthenticated, "", ""},
		{"protected with token", withBearer(token), "/test.Service/Private", codes.OK, "user-1", "admin"},
		{"lowercase scheme", metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "bearer "+token)), "/test.Service/Private", codes.OK, "user-1", "admin"},
		{"wrong scheme", metadata.NewIncomingContext(context.Background(),
			metadata.Pairs("authorization", "Basic abc")), "/test.Service/Private", codes.Unauthenticated, "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser, gotRole string
			handler := func(ctx context.Context, req any) (any, error) {
				gotUser, _ = GetUserID(ctx)
				gotRole, _ = GetRole(ctx)
				return "ok", nil
			}
			_, err := interceptor(tc.ctx, "req", &grpc.UnaryServerInfo{FullMethod: tc.method}, handler)
			if code := status.Code(err); code != tc.wantCode {
				t.Fatalf("code = %v, want %v", code, tc.wantCode)
			}
			if gotUser != tc.wantUser || gotRole != tc.wantRole {
				t.Errorf("identity = %q/%q, want %q/%q", gotUser, gotRole, tc.wantUser, tc.wantRole)
			}
		})
	}
}

func TestContextIdentity(t *testing.T) {
	if _, ok := GetUserID(context.Background()); ok {
		t.Error("empty context should have no user")
	}
	ctx := WithIdentity(context.Background(), "u", "customer")
	if id, _ := GetUserID(ctx); id != "u" {
		t.Errorf("user = %q", id)
	}
	if role, _ := GetRole(ctx); role != "customer" {
		t.Errorf("role = %q", role)
	}
}
