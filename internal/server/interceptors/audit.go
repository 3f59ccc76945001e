package interceptors

import (
	"context"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"dealership-backoffice/internal/audit"
)

// AuditUnary writes one audit entry per call made by an authenticated caller, failed calls
// included. Methods in quiet are not audited. Anonymous calls such as login steps are
// audited by their handlers instead.
func AuditUnary(logger audit.AuditLogger, quiet MethodSet) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if logger == nil || quiet.Has(info.FullMethod) {
			return resp, err
		}
		if id, ok := IdentityFrom(ctx); ok && id.UserID != "" {
			ar := audit.ParseFullMethod(info.FullMethod)
			logger.LogEvent(ctx, id.UserID, ar.Action, ar.Resource, audit.Meta("status", status.Code(err).String()))
		}
		return resp, err
	}
}

// ClientIP returns the caller address: the first x-forwarded-for hop, then x-real-ip, then
// the transport peer. The fiber gateway sets x-forwarded-for.
func ClientIP(ctx context.Context) string {
	md, _ := metadata.FromIncomingContext(ctx)
	if vals := md.Get("x-forwarded-for"); len(vals) > 0 {
		first, _, _ := strings.Cut(vals[0], ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if vals := md.Get("x-real-ip"); len(vals) > 0 {
		if ip := strings.TrimSpace(vals[0]); ip != "" {
			return ip
		}
	}
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
