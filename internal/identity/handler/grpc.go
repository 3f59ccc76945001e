package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authv1 "dealership-backoffice/api/auth/v1"
	"dealership-backoffice/internal/apperr"
	"dealership-backoffice/internal/identity/service"
	"dealership-backoffice/internal/platform/rbac"
	"dealership-backoffice/internal/policy/engine"
	userdomain "dealership-backoffice/internal/user/domain"
)

// AuthServer implements AuthService for the OTP register and login flows and the admin
// customer listing.
type AuthServer struct {
	auth  *service.AuthService
	authz rbac.Authorizer
}

// NewAuthServer returns a new Auth gRPC server. Pass nil auth for stub (Unimplemented).
func NewAuthServer(auth *service.AuthService, authz rbac.Authorizer) *AuthServer {
	return &AuthServer{auth: auth, authz: authz}
}

// RegisterRequestOTP creates a pending customer and sends a register code.
func (s *AuthServer) RegisterRequestOTP(ctx context.Context, req *authv1.RegisterRequest) (*authv1.OTPSentResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method RegisterRequestOTP not implemented")
	}
	userID, err := s.auth.RegisterRequestOTP(ctx, req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &authv1.OTPSentResponse{UserID: userID, Message: service.OTPMessage}, nil
}

// RegisterVerifyOTP activates the user and returns an access token.
func (s *AuthServer) RegisterVerifyOTP(ctx context.Context, req *authv1.VerifyOTPRequest) (*authv1.TokenResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method RegisterVerifyOTP not implemented")
	}
	res, err := s.auth.RegisterVerifyOTP(ctx, req.UserID, req.Code)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return tokenToResponse(res), nil
}

// LoginRequestOTP checks credentials and sends a login code.
func (s *AuthServer) LoginRequestOTP(ctx context.Context, req *authv1.LoginRequest) (*authv1.OTPSentResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method LoginRequestOTP not implemented")
	}
	userID, err := s.auth.LoginRequestOTP(ctx, req.Email, req.Password)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &authv1.OTPSentResponse{UserID: userID, Message: service.OTPMessage}, nil
}

// LoginVerifyOTP returns an access token for a valid login code.
func (s *AuthServer) LoginVerifyOTP(ctx context.Context, req *authv1.VerifyOTPRequest) (*authv1.TokenResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method LoginVerifyOTP not implemented")
	}
	res, err := s.auth.LoginVerifyOTP(ctx, req.UserID, req.Code)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return tokenToResponse(res), nil
}

// ListCustomers returns all customers ordered by name. Admin only.
func (s *AuthServer) ListCustomers(ctx context.Context, req *authv1.ListCustomersRequest) (*authv1.ListCustomersResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method ListCustomers not implemented")
	}
	if _, err := rbac.Require(ctx, s.authz, engine.ActionCustomerList); err != nil {
		return nil, err
	}
	list, err := s.auth.ListCustomers(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	customers := make([]*authv1.Customer, 0, len(list))
	for _, u := range list {
		customers = append(customers, customerToProto(u))
	}
	return &authv1.ListCustomersResponse{Customers: customers}, nil
}

func tokenToResponse(res *service.AuthResult) *authv1.TokenResponse {
	return &authv1.TokenResponse{
		Token:     res.AccessToken,
		ExpiresAt: res.ExpiresAt,
		UserID:    res.UserID,
		Role:      string(res.Role),
	}
}

func customerToProto(u *userdomain.User) *authv1.Customer {
	return &authv1.Customer{ID: u.ID, FullName: u.FullName, Email: u.Email, CreatedAt: u.CreatedAt}
}
