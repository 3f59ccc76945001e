package auditv1

import (
	"context"

	"google.golang.org/grpc"

	"dealership-backoffice/api/rpc"
)

const ServiceName = "dealership.audit.v1.AuditService"

// Full method names, as seen by interceptors.
var (
	AuditService_ListAuditLogs_FullMethodName = rpc.FullMethod(ServiceName, "ListAuditLogs")
)

// AuditServiceServer is the server API for AuditService.
type AuditServiceServer interface {
	ListAuditLogs(context.Context, *ListAuditLogsRequest) (*ListAuditLogsResponse, error)
}

var AuditService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuditServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "ListAuditLogs", AuditServiceServer.ListAuditLogs),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAuditServiceServer(s grpc.ServiceRegistrar, srv AuditServiceServer) {
	s.RegisterService(&AuditService_ServiceDesc, srv)
}

// AuditServiceClient is the client API for AuditService.
type AuditServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuditServiceClient(cc grpc.ClientConnInterface) *AuditServiceClient {
	return &AuditServiceClient{cc: cc}
}

func (c *AuditServiceClient) ListAuditLogs(ctx context.Context, in *ListAuditLogsRequest, opts ...grpc.CallOption) (*ListAuditLogsResponse, error) {
	out := new(ListAuditLogsResponse)
	if err := rpc.Invoke(ctx, c.cc, AuditService_ListAuditLogs_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
