package telemetry

import (
	"context"
	"log"
	"sync"
	"time"

	"dealership-backoffice/internal/telemetry/domain"
)

// emitTimeout is the max time allowed for a single async emit.
const emitTimeout = 5 * time.Second

// ShutdownDrainDuration bounds how long Drain waits for in-flight emits at shutdown.
const ShutdownDrainDuration = emitTimeout

var inflight sync.WaitGroup

// EmitAsync runs Emit in a goroutine with a short timeout so the caller is not blocked.
// Errors are logged. emitter and event may be nil; then EmitAsync returns immediately.
// The goroutine does not inherit ctx cancellation, so a finished request does not abort its emit.
func EmitAsync(emitter EventEmitter, ctx context.Context, event *domain.Event) {
	if emitter == nil || event == nil {
		return
	}
	inflight.Add(1)
	go func() {
		defer inflight.Done()
		emitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emitTimeout)
		defer cancel()
		if err := emitter.Emit(emitCtx, event); err != nil {
			log.Printf("telemetry: async emit failed: %v", err)
		}
	}()
}

// Drain waits for in-flight async emits, up to ShutdownDrainDuration. It reports whether all finished.
func Drain() bool {
	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(ShutdownDrainDuration):
		return false
	}
}
