package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

// Context keys under which the logger and request metadata travel.
const (
	LoggerKey    contextKey = "logger"
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
)

// WithContext attaches the logger to ctx.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger when
// none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID in ctx and returns a logger that
// tags every entry with it.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String("request_id", requestID))
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	return WithContext(ctx, enriched), enriched
}

// WithUserID stores the authenticated account ID in ctx and returns a
// logger that tags every entry with it.
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	enriched := logger.With(zap.String("user_id", userID))
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return WithContext(ctx, enriched), enriched
}

// GetRequestID reads the request ID from ctx, empty when absent.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// GetUserID reads the account ID from ctx, empty when absent.
func GetUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}
