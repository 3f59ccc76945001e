package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	auditv1 "dealership-backoffice/api/audit/v1"
	"dealership-backoffice/internal/apperr"
	"dealership-backoffice/internal/audit/domain"
	"dealership-backoffice/internal/audit/repository"
	"dealership-backoffice/internal/platform/rbac"
	"dealership-backoffice/internal/policy/engine"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Server implements AuditService for reading the audit trail.
type Server struct {
	repo  repository.Repository
	authz rbac.Authorizer
}

// NewServer returns a new Audit gRPC server. Pass nil repo for stub (Unimplemented).
func NewServer(repo repository.Repository, authz rbac.Authorizer) *Server {
	return &Server{repo: repo, authz: authz}
}

// ListAuditLogs returns the newest audit entries. Admin only.
func (s *Server) ListAuditLogs(ctx context.Context, req *auditv1.ListAuditLogsRequest) (*auditv1.ListAuditLogsResponse, error) {
	if s.repo == nil {
		return nil, status.Error(codes.Unimplemented, "method ListAuditLogs not implemented")
	}
	if _, err := rbac.Require(ctx, s.authz, engine.ActionAuditList); err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	list, err := s.repo.List(ctx, limit, 0)
	if err != nil {
		return nil, apperr.ToStatus(err)
	}
	out := make([]*auditv1.AuditLog, 0, len(list))
	for _, a := range list {
		out = append(out, auditToProto(a))
	}
	return &auditv1.ListAuditLogsResponse{Logs: out}, nil
}

func auditToProto(a *domain.AuditLog) *auditv1.AuditLog {
	return &auditv1.AuditLog{
		ID:        a.ID,
		UserID:    a.UserID,
		Action:    a.Action,
		Resource:  a.Resource,
		IP:        a.IP,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
	}
}
