package vehiclev1

import (
	"context"

	"google.golang.org/grpc"

	"dealership-backoffice/api/rpc"
)

const ServiceName = "dealership.vehicle.v1.VehicleService"

// Full method names, as seen by interceptors.
var (
	VehicleService_SearchVehicles_FullMethodName   = rpc.FullMethod(ServiceName, "SearchVehicles")
	VehicleService_GetVehicle_FullMethodName       = rpc.FullMethod(ServiceName, "GetVehicle")
	VehicleService_CreateVehicle_FullMethodName    = rpc.FullMethod(ServiceName, "CreateVehicle")
	VehicleService_UpdateVehicle_FullMethodName    = rpc.FullMethod(ServiceName, "UpdateVehicle")
	VehicleService_DeleteVehicle_FullMethodName    = rpc.FullMethod(ServiceName, "DeleteVehicle")
	VehicleService_RequestUpdateOTP_FullMethodName = rpc.FullMethod(ServiceName, "RequestUpdateOTP")
)

// VehicleServiceServer is the server API for VehicleService.
type VehicleServiceServer interface {
	SearchVehicles(context.Context, *SearchVehiclesRequest) (*SearchVehiclesResponse, error)
	GetVehicle(context.Context, *GetVehicleRequest) (*Vehicle, error)
	CreateVehicle(context.Context, *CreateVehicleRequest) (*Vehicle, error)
	UpdateVehicle(context.Context, *UpdateVehicleRequest) (*Vehicle, error)
	DeleteVehicle(context.Context, *DeleteVehicleRequest) (*DeleteVehicleResponse, error)
	RequestUpdateOTP(context.Context, *RequestUpdateOTPRequest) (*OTPRequestedResponse, error)
}

var VehicleService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VehicleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "SearchVehicles", VehicleServiceServer.SearchVehicles),
		rpc.Method(ServiceName, "GetVehicle", VehicleServiceServer.GetVehicle),
		rpc.Method(ServiceName, "CreateVehicle", VehicleServiceServer.CreateVehicle),
		rpc.Method(ServiceName, "UpdateVehicle", VehicleServiceServer.UpdateVehicle),
		rpc.Method(ServiceName, "DeleteVehicle", VehicleServiceServer.DeleteVehicle),
		rpc.Method(ServiceName, "RequestUpdateOTP", VehicleServiceServer.RequestUpdateOTP),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterVehicleServiceServer(s grpc.ServiceRegistrar, srv VehicleServiceServer) {
	s.RegisterService(&VehicleService_ServiceDesc, srv)
}

// VehicleServiceClient is the client API for VehicleService.
type VehicleServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVehicleServiceClient(cc grpc.ClientConnInterface) *VehicleServiceClient {
	return &VehicleServiceClient{cc: cc}
}

func (c *VehicleServiceClient) SearchVehicles(ctx context.Context, in *SearchVehiclesRequest, opts ...grpc.CallOption) (*SearchVehiclesResponse, error) {
	out := new(SearchVehiclesResponse)
	if err := rpc.Invoke(ctx, c.cc, VehicleService_SearchVehicles_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VehicleServiceClient) GetVehicle(ctx context.Context, in *GetVehicleRequest, opts ...grpc.CallOption) (*Vehicle, error) {
	out := new(Vehicle)
	if err := rpc.Invoke(ctx, c.cc, VehicleService_GetVehicle_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VehicleServiceClient) CreateVehicle(ctx context.Context, in *CreateVehicleRequest, opts ...grpc.CallOption) (*Vehicle, error) {
	out := new(Vehicle)
	if err := rpc.Invoke(ctx, c.cc, VehicleService_CreateVehicle_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VehicleServiceClient) UpdateVehicle(ctx context.Context, in *UpdateVehicleRequest, opts ...grpc.CallOption) (*Vehicle, error) {
	out := new(Vehicle)
	if err := rpc.Invoke(ctx, c.cc, VehicleService_UpdateVehicle_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VehicleServiceClient) DeleteVehicle(ctx context.Context, in *DeleteVehicleRequest, opts ...grpc.CallOption) (*DeleteVehicleResponse, error) {
	out := new(DeleteVehicleResponse)
	if err := rpc.Invoke(ctx, c.cc, VehicleService_DeleteVehicle_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VehicleServiceClient) RequestUpdateOTP(ctx context.Context, in *RequestUpdateOTPRequest, opts ...grpc.CallOption) (*OTPRequestedResponse, error) {
	out := new(OTPRequestedResponse)
	if err := rpc.Invoke(ctx, c.cc, VehicleService_RequestUpdateOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
