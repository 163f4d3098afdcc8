package slogx

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// WithContext stores a request-scoped logger on ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by HTTPMiddleware, or slog.Default
// outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// WithUserID tags every later log line of the request with the
// authenticated user.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return WithContext(ctx, FromContext(ctx).With(slog.Int64("user_id", userID)))
}
