package logger

import (
	"context"

	"go.uber.org/zap"

	"storevista-be/internal/utils"
)

type ctxKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// FromCtx tags the global logger with the request id and, once the auth
// middleware has run, the caller's user id.
func FromCtx(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if reqID := RequestIDFrom(ctx); reqID != "" {
		fields = append(fields, zap.String("request_id", reqID))
	}
	if id := utils.GetIdentity(ctx); id.Authenticated {
		fields = append(fields, zap.Int64("user_id", id.UserID))
	}
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
