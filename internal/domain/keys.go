package domain

import "context"

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
	KeyClientIP  CtxKey = "ClientIP"
)

// RequestIDFrom returns the request id stored in ctx, if any
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)
	return id
}

// ClientIPFrom returns the client IP stored in ctx, if any
func ClientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(KeyClientIP).(string)
	return ip
}
