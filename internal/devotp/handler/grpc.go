// Package handler implements the dev-only gRPC DevService (GetOTP).
package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	devv1 "dealership-backoffice/api/dev/v1"
	"dealership-backoffice/internal/devotp"
	otpdomain "dealership-backoffice/internal/otp/domain"
)

const devOTPNote = "DEV MODE ONLY"

// Server implements DevService. Only registered when dev OTP is enabled and not production.
type Server struct {
	store devotp.Store
}

// NewServer returns a DevService server that reads OTP from the given store.
func NewServer(store devotp.Store) *Server {
	return &Server{store: store}
}

// GetOTP returns the latest plain OTP for (user_id, purpose) from the dev store. Returns
// NotFound if missing or expired.
func (s *Server) GetOTP(ctx context.Context, req *devv1.GetOTPRequest) (*devv1.GetOTPResponse, error) {
	if req.UserID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id required")
	}
	purpose, err := otpdomain.ParsePurpose(req.Purpose)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if s.store == nil {
		return nil, status.Error(codes.NotFound, "otp not found or expired")
	}
	code, expiresAt, ok := s.store.Lookup(ctx, req.UserID, purpose)
	if !ok {
		return nil, status.Error(codes.NotFound, "otp not found or expired")
	}
	return &devv1.GetOTPResponse{OTP: code, ExpiresAt: expiresAt, Note: devOTPNote}, nil
}
