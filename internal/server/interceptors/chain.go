package interceptors

import (
	"context"

	"google.golang.org/grpc"
)

// Chain composes interceptors so the first one is outermost, matching
// grpc.ChainUnaryInterceptor. The HTTP gateway uses it to run the same chain as the server.
func Chain(list ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		next := handler
		for i := len(list) - 1; i >= 0; i-- {
			ic, h := list[i], next
			next = func(ctx context.Context, req any) (any, error) {
				return ic(ctx, req, info, h)
			}
		}
		return next(ctx, req)
	}
}
