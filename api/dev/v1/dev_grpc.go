package devv1

import (
	"context"

	"google.golang.org/grpc"

	"dealership-backoffice/api/rpc"
)

const ServiceName = "dealership.dev.v1.DevService"

// Full method names, as seen by interceptors.
var (
	DevService_GetOTP_FullMethodName = rpc.FullMethod(ServiceName, "GetOTP")
)

// DevServiceServer is the server API for DevService.
// Registered only when dev OTP retrieval is enabled.
type DevServiceServer interface {
	GetOTP(context.Context, *GetOTPRequest) (*GetOTPResponse, error)
}

var DevService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DevServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "GetOTP", DevServiceServer.GetOTP),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterDevServiceServer(s grpc.ServiceRegistrar, srv DevServiceServer) {
	s.RegisterService(&DevService_ServiceDesc, srv)
}

// DevServiceClient is the client API for DevService.
type DevServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDevServiceClient(cc grpc.ClientConnInterface) *DevServiceClient {
	return &DevServiceClient{cc: cc}
}

func (c *DevServiceClient) GetOTP(ctx context.Context, in *GetOTPRequest, opts ...grpc.CallOption) (*GetOTPResponse, error) {
	out := new(GetOTPResponse)
	if err := rpc.Invoke(ctx, c.cc, DevService_GetOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
