// Package shared holds request and response helpers used by every handler
// and by the middleware package.
package shared

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
)

// ContextKey types the request-context keys set by this package.
type ContextKey string

// TraceIDKey holds the per-request trace id echoed in error bodies.
const TraceIDKey ContextKey = "traceID"

// TraceHeader is the response header carrying the trace id.
const TraceHeader = "X-Trace-ID"

// SetTraceID returns ctx carrying a newly generated trace id.
func SetTraceID(ctx context.Context) context.Context {
	id := uuid.New()
	return context.WithValue(ctx, TraceIDKey, hex.EncodeToString(id[:]))
}

// GetTraceID returns the trace id in ctx, or "" outside a traced request.
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}
