package healthv1

import (
	"context"

	"google.golang.org/grpc"

	"dealership-backoffice/api/rpc"
)

const ServiceName = "dealership.health.v1.HealthService"

// Full method names, as seen by interceptors.
var (
	HealthService_HealthCheck_FullMethodName = rpc.FullMethod(ServiceName, "HealthCheck")
)

// HealthServiceServer is the server API for HealthService.
type HealthServiceServer interface {
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
}

var HealthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HealthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "HealthCheck", HealthServiceServer.HealthCheck),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterHealthServiceServer(s grpc.ServiceRegistrar, srv HealthServiceServer) {
	s.RegisterService(&HealthService_ServiceDesc, srv)
}

// HealthServiceClient is the client API for HealthService.
type HealthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHealthServiceClient(cc grpc.ClientConnInterface) *HealthServiceClient {
	return &HealthServiceClient{cc: cc}
}

func (c *HealthServiceClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	out := new(HealthCheckResponse)
	if err := rpc.Invoke(ctx, c.cc, HealthService_HealthCheck_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
