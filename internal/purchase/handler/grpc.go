package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	purchasev1 "dealership-backoffice/api/purchase/v1"
	"dealership-backoffice/internal/apperr"
	"dealership-backoffice/internal/audit"
	otpdomain "dealership-backoffice/internal/otp/domain"
	"dealership-backoffice/internal/platform/rbac"
	"dealership-backoffice/internal/policy/engine"
	"dealership-backoffice/internal/purchase/domain"
	"dealership-backoffice/internal/purchase/service"
)

const otpRequestedMessage = "OTP sent. Please verify."

// OTPGenerator issues purchase codes.
type OTPGenerator interface {
	Generate(ctx context.Context, userID string, purpose otpdomain.Purpose) (*otpdomain.Code, error)
}

// Server implements PurchaseService for the purchase request and approval workflow.
type Server struct {
	svc   *service.Service
	otps  OTPGenerator
	authz rbac.Authorizer
	audit audit.AuditLogger
}

// NewServer returns a new Purchase gRPC server. Pass nil svc for stub (Unimplemented).
// auditLogger may be nil.
func NewServer(svc *service.Service, otps OTPGenerator, authz rbac.Authorizer, auditLogger audit.AuditLogger) *Server {
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &Server{svc: svc, otps: otps, authz: authz, audit: auditLogger}
}

// RequestPurchase records a pending purchase for the calling customer. Customer only.
func (s *Server) RequestPurchase(ctx context.Context, req *purchasev1.RequestPurchaseRequest) (*purchasev1.HistoryItem, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method RequestPurchase not implemented")
	}
	userID, err := rbac.Require(ctx, s.authz, engine.ActionPurchaseRequest)
	if err != nil {
		return nil, err
	}
	if req.VehicleID == "" {
		return nil, status.Error(codes.InvalidArgument, "vehicle_id required")
	}
	item, err := s.svc.RequestPurchase(ctx, userID, req.VehicleID, req.OTPCode)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	s.audit.LogEvent(ctx, userID, "purchase_requested", "purchase", audit.Meta("purchase_id", item.ID, "vehicle_id", req.VehicleID))
	return historyToProto(item), nil
}

// RequestPurchaseOTP sends the calling customer a purchase code. Customer only.
func (s *Server) RequestPurchaseOTP(ctx context.Context, req *purchasev1.RequestPurchaseOTPRequest) (*purchasev1.OTPRequestedResponse, error) {
	if s.otps == nil {
		return nil, status.Error(codes.Unimplemented, "method RequestPurchaseOTP not implemented")
	}
	userID, err := rbac.Require(ctx, s.authz, engine.ActionPurchaseRequestOTP)
	if err != nil {
		return nil, err
	}
	if _, err := s.otps.Generate(ctx, userID, otpdomain.PurposePurchase); err != nil {
		return nil, apperr.ToStatus(err)
	}
	s.audit.LogEvent(ctx, userID, "purchase_otp_requested", "purchase", audit.Meta("vehicle_id", req.VehicleID))
	return &purchasev1.OTPRequestedResponse{Message: otpRequestedMessage}, nil
}

// GetHistory returns the calling customer's purchases, newest first. Customer only.
func (s *Server) GetHistory(ctx context.Context, req *purchasev1.GetHistoryRequest) (*purchasev1.GetHistoryResponse, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method GetHistory not implemented")
	}
	userID, err := rbac.Require(ctx, s.authz, engine.ActionPurchaseHistory)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.GetHistory(ctx, userID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	out := make([]*purchasev1.HistoryItem, 0, len(list))
	for _, h := range list {
		out = append(out, historyToProto(h))
	}
	return &purchasev1.GetHistoryResponse{Purchases: out}, nil
}

// ListPurchases returns every purchase with customer and vehicle fields. Admin only.
func (s *Server) ListPurchases(ctx context.Context, req *purchasev1.ListPurchasesRequest) (*purchasev1.ListPurchasesResponse, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method ListPurchases not implemented")
	}
	if _, err := rbac.Require(ctx, s.authz, engine.ActionPurchaseList); err != nil {
		return nil, err
	}
	list, err := s.svc.ListAllForAdmin(ctx)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	out := make([]*purchasev1.AdminListItem, 0, len(list))
	for _, item := range list {
		out = append(out, adminItemToProto(item))
	}
	return &purchasev1.ListPurchasesResponse{Purchases: out}, nil
}

// GetPurchase returns one purchase with the processing admin. Admin only.
func (s *Server) GetPurchase(ctx context.Context, req *purchasev1.GetPurchaseRequest) (*purchasev1.PurchaseDetail, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method GetPurchase not implemented")
	}
	if _, err := rbac.Require(ctx, s.authz, engine.ActionPurchaseGet); err != nil {
		return nil, err
	}
	d, err := s.svc.GetDetailForAdmin(ctx, req.ID)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	return &purchasev1.PurchaseDetail{
		AdminListItem:        *adminItemToProto(&d.AdminListItem),
		VehicleYear:          d.VehicleYear,
		ProcessedByAdminID:   d.ProcessedByAdminID,
		ProcessedByAdminName: d.ProcessedByAdminName,
	}, nil
}

// CompletePurchase completes a pending purchase and marks the vehicle sold. Admin only.
func (s *Server) CompletePurchase(ctx context.Context, req *purchasev1.DecidePurchaseRequest) (*purchasev1.DecidePurchaseResponse, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method CompletePurchase not implemented")
	}
	adminID, err := rbac.Require(ctx, s.authz, engine.ActionPurchaseComplete)
	if err != nil {
		return nil, err
	}
	outcome, err := s.svc.CompletePurchase(ctx, req.ID, adminID)
	return s.decided(ctx, adminID, req.ID, outcome, err)
}

// RejectPurchase rejects a pending purchase. Admin only.
func (s *Server) RejectPurchase(ctx context.Context, req *purchasev1.DecidePurchaseRequest) (*purchasev1.DecidePurchaseResponse, error) {
	if s.svc == nil {
		return nil, status.Error(codes.Unimplemented, "method RejectPurchase not implemented")
	}
	adminID, err := rbac.Require(ctx, s.authz, engine.ActionPurchaseReject)
	if err != nil {
		return nil, err
	}
	outcome, err := s.svc.RejectPurchase(ctx, req.ID, adminID)
	return s.decided(ctx, adminID, req.ID, outcome, err)
}

func (s *Server) decided(ctx context.Context, adminID, purchaseID string, outcome service.Outcome, err error) (*purchasev1.DecidePurchaseResponse, error) {
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	switch outcome {
	case service.OutcomeNotFound:
		return nil, status.Error(codes.NotFound, "purchase not found")
	case service.OutcomeNotPending:
		return nil, status.Error(codes.FailedPrecondition, "purchase not pending")
	}
	st := domain.StatusCompleted
	if outcome == service.OutcomeRejected {
		st = domain.StatusRejected
	}
	s.audit.LogEvent(ctx, adminID, "purchase_"+string(st), "purchase", audit.Meta("purchase_id", purchaseID))
	return &purchasev1.DecidePurchaseResponse{ID: purchaseID, Status: string(st)}, nil
}

func historyToProto(h *service.HistoryItem) *purchasev1.HistoryItem {
	return &purchasev1.HistoryItem{
		ID:              h.ID,
		VehicleID:       h.VehicleID,
		VehicleMake:     h.VehicleMake,
		VehicleModel:    h.VehicleModel,
		VehicleYear:     h.VehicleYear,
		PriceAtPurchase: h.PriceAtPurchase,
		Status:          string(h.Status),
		PurchaseDate:    h.PurchaseDate,
	}
}

func adminItemToProto(a *service.AdminListItem) *purchasev1.AdminListItem {
	return &purchasev1.AdminListItem{
		ID:              a.ID,
		UserID:          a.UserID,
		CustomerName:    a.CustomerName,
		VehicleID:       a.VehicleID,
		VehicleMake:     a.VehicleMake,
		VehicleModel:    a.VehicleModel,
		PriceAtPurchase: a.PriceAtPurchase,
		Status:          string(a.Status),
		PurchaseDate:    a.PurchaseDate,
	}
}
