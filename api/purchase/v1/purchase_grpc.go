package purchasev1

import (
	"context"

	"google.golang.org/grpc"

	"dealership-backoffice/api/rpc"
)

const ServiceName = "dealership.purchase.v1.PurchaseService"

// Full method names, as seen by interceptors.
var (
	PurchaseService_RequestPurchase_FullMethodName    = rpc.FullMethod(ServiceName, "RequestPurchase")
	PurchaseService_RequestPurchaseOTP_FullMethodName = rpc.FullMethod(ServiceName, "RequestPurchaseOTP")
	PurchaseService_GetHistory_FullMethodName         = rpc.FullMethod(ServiceName, "GetHistory")
	PurchaseService_ListPurchases_FullMethodName      = rpc.FullMethod(ServiceName, "ListPurchases")
	PurchaseService_GetPurchase_FullMethodName        = rpc.FullMethod(ServiceName, "GetPurchase")
	PurchaseService_CompletePurchase_FullMethodName   = rpc.FullMethod(ServiceName, "CompletePurchase")
	PurchaseService_RejectPurchase_FullMethodName     = rpc.FullMethod(ServiceName, "RejectPurchase")
)

// PurchaseServiceServer is the server API for PurchaseService.
type PurchaseServiceServer interface {
	RequestPurchase(context.Context, *RequestPurchaseRequest) (*HistoryItem, error)
	RequestPurchaseOTP(context.Context, *RequestPurchaseOTPRequest) (*OTPRequestedResponse, error)
	GetHistory(context.Context, *GetHistoryRequest) (*GetHistoryResponse, error)
	ListPurchases(context.Context, *ListPurchasesRequest) (*ListPurchasesResponse, error)
	GetPurchase(context.Context, *GetPurchaseRequest) (*PurchaseDetail, error)
	CompletePurchase(context.Context, *DecidePurchaseRequest) (*DecidePurchaseResponse, error)
	RejectPurchase(context.Context, *DecidePurchaseRequest) (*DecidePurchaseResponse, error)
}

var PurchaseService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PurchaseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "RequestPurchase", PurchaseServiceServer.RequestPurchase),
		rpc.Method(ServiceName, "RequestPurchaseOTP", PurchaseServiceServer.RequestPurchaseOTP),
		rpc.Method(ServiceName, "GetHistory", PurchaseServiceServer.GetHistory),
		rpc.Method(ServiceName, "ListPurchases", PurchaseServiceServer.ListPurchases),
		rpc.Method(ServiceName, "GetPurchase", PurchaseServiceServer.GetPurchase),
		rpc.Method(ServiceName, "CompletePurchase", PurchaseServiceServer.CompletePurchase),
		rpc.Method(ServiceName, "RejectPurchase", PurchaseServiceServer.RejectPurchase),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterPurchaseServiceServer(s grpc.ServiceRegistrar, srv PurchaseServiceServer) {
	s.RegisterService(&PurchaseService_ServiceDesc, srv)
}

// PurchaseServiceClient is the client API for PurchaseService.
type PurchaseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPurchaseServiceClient(cc grpc.ClientConnInterface) *PurchaseServiceClient {
	return &PurchaseServiceClient{cc: cc}
}

func (c *PurchaseServiceClient) RequestPurchase(ctx context.Context, in *RequestPurchaseRequest, opts ...grpc.CallOption) (*HistoryItem, error) {
	out := new(HistoryItem)
	if err := rpc.Invoke(ctx, c.cc, PurchaseService_RequestPurchase_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PurchaseServiceClient) RequestPurchaseOTP(ctx context.Context, in *RequestPurchaseOTPRequest, opts ...grpc.CallOption) (*OTPRequestedResponse, error) {
	out := new(OTPRequestedResponse)
	if err := rpc.Invoke(ctx, c.cc, PurchaseService_RequestPurchaseOTP_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PurchaseServiceClient) GetHistory(ctx context.Context, in *GetHistoryRequest, opts ...grpc.CallOption) (*GetHistoryResponse, error) {
	out := new(GetHistoryResponse)
	if err := rpc.Invoke(ctx, c.cc, PurchaseService_GetHistory_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PurchaseServiceClient) ListPurchases(ctx context.Context, in *ListPurchasesRequest, opts ...grpc.CallOption) (*ListPurchasesResponse, error) {
	out := new(ListPurchasesResponse)
	if err := rpc.Invoke(ctx, c.cc, PurchaseService_ListPurchases_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PurchaseServiceClient) GetPurchase(ctx context.Context, in *GetPurchaseRequest, opts ...grpc.CallOption) (*PurchaseDetail, error) {
	out := new(PurchaseDetail)
	if err := rpc.Invoke(ctx, c.cc, PurchaseService_GetPurchase_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PurchaseServiceClient) CompletePurchase(ctx context.Context, in *DecidePurchaseRequest, opts ...grpc.CallOption) (*DecidePurchaseResponse, error) {
	out := new(DecidePurchaseResponse)
	if err := rpc.Invoke(ctx, c.cc, PurchaseService_CompletePurchase_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PurchaseServiceClient) RejectPurchase(ctx context.Context, in *DecidePurchaseRequest, opts ...grpc.CallOption) (*DecidePurchaseResponse, error) {
	out := new(DecidePurchaseResponse)
	if err := rpc.Invoke(ctx, c.cc, PurchaseService_RejectPurchase_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
