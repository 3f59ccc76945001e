package authv1

import (
	"context"

	"google.golang.org/grpc"

	"dealership-backoffice/api/rpc"
)

const ServiceName = "dealership.auth.v1.AuthService"

// Full method names, as seen by interceptors.
var (
	AuthService_RegisterRequestOTP_FullMethodName = rpc.FullMethod(ServiceName, "RegisterRequestOTP")
	AuthService_RegisterVerifyOTP_FullMethodName  = rpc.FullMethod(ServiceName, "RegisterVerifyOTP")
	AuthService_LoginRequestOTP_FullMethodName    = rpc.FullMethod(ServiceName, "LoginRequestOTP")
	AuthService_LoginVerifyOTP_FullMethodName     = rpc.FullMethod(ServiceName, "LoginVerifyOTP")
	AuthService_ListCustomers_FullMethodName      = rpc.FullMethod(ServiceName, "ListCustomers")
)

// AuthServiceServer is the server API for AuthService.
type AuthServiceServer interface {
	RegisterRequestOTP(context.Context, *RegisterRequest) (*OTPSentResponse, error)
	RegisterVerifyOTP(context.Context, *VerifyOTPRequest) (*TokenResponse, error)
	LoginRequestOTP(context.Context, *LoginRequest) (*OTPSentResponse, error)
	LoginVerifyOTP(context.Context, *VerifyOTPRequest) (*TokenResponse, error)
	ListCustomers(context.Context, *ListCustomersRequest) (*ListCustomersResponse, error)
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "RegisterRequestOTP", AuthServiceServer.RegisterRequestOTP),
		rpc.Method(ServiceName, "RegisterVerifyOTP", AuthServiceServer.RegisterVerifyOTP),
		rpc.Method(ServiceName, "LoginRequestOTP", AuthServiceServer.LoginRequestOTP),
		rpc.Method(ServiceName, "LoginVerifyOTP", AuthServiceServer.LoginVerifyOTP),
		rpc.Method(ServiceName, "ListCustomers", AuthServiceServer.ListCustomers),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

// AuthServiceClient is the client API for AuthService.
type AuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func (c *AuthServiceClient) RegisterRequestOTP(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*OTPSentResponse, error) {
	out := new(OTPSentResponse)
	if err := rpc.Invoke(ctx, c.cc, AuthService_RegisterRequestOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) RegisterVerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(TokenResponse)
	if err := rpc.Invoke(ctx, c.cc, AuthService_RegisterVerifyOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) LoginRequestOTP(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*OTPSentResponse, error) {
	out := new(OTPSentResponse)
	if err := rpc.Invoke(ctx, c.cc, AuthService_LoginRequestOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) LoginVerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	out := new(TokenResponse)
	if err := rpc.Invoke(ctx, c.cc, AuthService_LoginVerifyOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) ListCustomers(ctx context.Context, in *ListCustomersRequest, opts ...grpc.CallOption) (*ListCustomersResponse, error) {
	out := new(ListCustomersResponse)
	if err := rpc.Invoke(ctx, c.cc, AuthService_ListCustomers_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
