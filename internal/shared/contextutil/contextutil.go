package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is private so keys never collide with other packages.
type contextKey string

const requestIDKey contextKey = "request_id"

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// Logger decorates base with the request id carried by ctx, if any, so a
// service's log lines can be joined with the access log.
func Logger(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	if rid := GetRequestID(ctx); rid != "" {
		return base.With(zap.String("request_id", rid))
	}
	return base
}
