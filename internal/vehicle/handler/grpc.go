package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	vehiclev1 "dealership-backoffice/api/vehicle/v1"
	"dealership-backoffice/internal/apperr"
	"dealership-backoffice/internal/audit"
	"dealership-backoffice/internal/platform/rbac"
	"dealership-backoffice/internal/policy/engine"
	"dealership-backoffice/internal/vehicle/domain"
	"dealership-backoffice/internal/vehicle/service"
)

const otpRequestedMessage = "OTP sent. Please verify."

// Server implements VehicleService for inventory search and admin maintenance.
type Server struct {
	svc   *service.Service
	authz rbac.Authorizer
	audit audit.AuditLogger
}

// NewServer returns a new Vehicle gRPC server. Pass nil svc for stub (Unimplemented).
// auditLogger may be nil.
func NewServer(svc *service.Service, authz rbac.Authorizer, auditLogger audit.AuditLogger) *Server {
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &Server{svc: svc, authz: authz, audit: auditLogger}
}

// SearchVehicles returns available vehicles matching the filter.
func (s *Server) SearchVehicles(ctx context.Context, req *vehiclev1.SearchVehiclesRequest) (*vehiclev1.SearchVehiclesResponse, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method SearchVehicles not implemented")
	}
	if _, err := rbac.Require(ctx, s.authz, engine.ActionVehicleSearch); err != nil {
		return nil, err
	}
	list, err := s.svc.Search(ctx, domain.Filter{
		Make:     req.Make,
		Model:    req.Model,
		MinYear:  req.MinYear,
		MaxYear:  req.MaxYear,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	out := make([]*vehiclev1.Vehicle, 0, len(list))
	for _, v := range list {
		out = append(out, vehicleToProto(v))
	}
	return &vehiclev1.SearchVehiclesResponse{Vehicles: out}, nil
}

// GetVehicle returns a vehicle by ID.
func (s *Server) GetVehicle(ctx context.Context, req *vehiclev1.GetVehicleRequest) (*vehiclev1.Vehicle, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method GetVehicle not implemented")
	}
	if _, err := rbac.Require(ctx, s.authz, engine.ActionVehicleGet); err != nil {
		return nil, err
	}
	v, err := s.svc.Get(ctx, req.ID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return vehicleToProto(v), nil
}

// CreateVehicle adds an available vehicle. Admin only.
func (s *Server) CreateVehicle(ctx context.Context, req *vehiclev1.CreateVehicleRequest) (*vehiclev1.Vehicle, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method CreateVehicle not implemented")
	}
	adminID, err := rbac.Require(ctx, s.authz, engine.ActionVehicleCreate)
	if err != nil {
		return nil, err
	}
	v, err := s.svc.Create(ctx, domain.Vehicle{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Price:       req.Price,
		Color:       req.Color,
		Mileage:     req.Mileage,
		Description: req.Description,
	})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	s.audit.LogEvent(ctx, adminID, "vehicle_created", "vehicle", audit.Meta("vehicle_id", v.ID))
	return vehicleToProto(v), nil
}

// UpdateVehicle applies a partial update gated by the caller's update_vehicle OTP. Admin only.
func (s *Server) UpdateVehicle(ctx context.Context, req *vehiclev1.UpdateVehicleRequest) (*vehiclev1.Vehicle, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method UpdateVehicle not implemented")
	}
	adminID, err := rbac.Require(ctx, s.authz, engine.ActionVehicleUpdate)
	if err != nil {
		return nil, err
	}
	if req.OTPCode == "" {
		return nil, status.Error(codes.InvalidArgument, "otp code required")
	}
	v, err := s.svc.Update(ctx, adminID, req.ID, req.OTPCode, domain.Patch{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Price:       req.Price,
		Color:       req.Color,
		Mileage:     req.Mileage,
		Description: req.Description,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	s.audit.LogEvent(ctx, adminID, "vehicle_updated", "vehicle", audit.Meta("vehicle_id", v.ID))
	return vehicleToProto(v), nil
}

// DeleteVehicle removes a vehicle with no purchases. Admin only.
func (s *Server) DeleteVehicle(ctx context.Context, req *vehiclev1.DeleteVehicleRequest) (*vehiclev1.DeleteVehicleResponse, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method DeleteVehicle not implemented")
	}
	adminID, err := rbac.Require(ctx, s.authz, engine.ActionVehicleDelete)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Delete(ctx, req.ID); err != nil {
		return nil, apperr.ToStatus(err)
	}
	s.audit.LogEvent(ctx, adminID, "vehicle_deleted", "vehicle", audit.Meta("vehicle_id", req.ID))
	return &vehiclev1.DeleteVehicleResponse{}, nil
}

// RequestUpdateOTP sends the caller an update_vehicle code. Admin only.
func (s *Server) RequestUpdateOTP(ctx context.Context, req *vehiclev1.RequestUpdateOTPRequest) (*vehiclev1.OTPRequestedResponse, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method RequestUpdateOTP not implemented")
	}
	adminID, err := rbac.Require(ctx, s.authz, engine.ActionVehicleRequestOTP)
	if err != nil {
		return nil, err
	}
	if err := s.svc.RequestUpdateOTP(ctx, adminID); err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &vehiclev1.OTPRequestedResponse{Message: otpRequestedMessage}, nil
}

func vehicleToProto(v *domain.Vehicle) *vehiclev1.Vehicle {
	if v == nil {
		return nil
	}
	return &vehiclev1.Vehicle{
		ID:          v.ID,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		Price:       v.Price,
		Color:       v.Color,
		Mileage:     v.Mileage,
		Description: v.Description,
		IsAvailable: v.IsAvailable,
		CreatedAt:   v.CreatedAt,
	}
}
