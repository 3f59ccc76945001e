package interceptors

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"dealership-backoffice/internal/telemetry"
	"dealership-backoffice/internal/telemetry/domain"
)

// grpcRequestMetadata is Event.Metadata for grpc_request events.
type grpcRequestMetadata struct {
	FullMethod string `json:"full_method"`
	StatusCode string `json:"status_code"`
	DurationMs int64  `json:"duration_ms"`
	ClientIP   string `json:"client_ip"`
}

// TelemetryUnary emits a grpc_request event for every call not in quiet. Emits are
// asynchronous and never change the call's result.
func TelemetryUnary(emitter telemetry.EventEmitter, quiet MethodSet) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if emitter != nil && !quiet.Has(info.FullMethod) {
			telemetry.EmitAsync(emitter, ctx, requestEvent(ctx, info.FullMethod, err, start))
		}
		return resp, err
	}
}

func requestEvent(ctx context.Context, fullMethod string, err error, start time.Time) *domain.Event {
	meta, _ := json.Marshal(grpcRequestMetadata{
		FullMethod: fullMethod,
		StatusCode: status.Code(err).String(),
		DurationMs: time.Since(start).Milliseconds(),
		ClientIP:   ClientIP(ctx),
	})
	id, _ := IdentityFrom(ctx)
	return &domain.Event{
		UserID:    id.UserID,
		Role:      id.Role,
		EventType: "grpc_request",
		Source:    "grpc_interceptor",
		Metadata:  meta,
		CreatedAt: start.UTC(),
	}
}
