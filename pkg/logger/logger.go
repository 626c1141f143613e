// Package logger provides the service-wide structured logger built on log/slog.
//
// Handlers should log through WithCtx so that every line carries the request ID
// attached by middleware.Logger:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order saved", "username", order.Username)
//	// → time=... level=INFO msg="order saved" request_id=3f2a... username=jdoe
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/eduportal/config"
)

var L *slog.Logger

// console is the stdout handler; EnableMongo fans out from it.
var console slog.Handler

func init() {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	if config.IsProduction() {
		opts.Level = slog.LevelInfo
		console = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		console = slog.NewTextHandler(os.Stdout, opts)
	}

	L = slog.New(console)
	slog.SetDefault(L)
}

// EnableMongo adds the MongoDB sink next to the console handler. The returned
// handler must be closed on shutdown to flush buffered records.
func EnableMongo(uri, db string) (*MongoHandler, error) {
	mh, err := NewMongoHandler(uri, db, "logs")
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	L = slog.New(NewMultiHandler(console, mh))
	slog.SetDefault(L)
	return mh, nil
}

type ctxKey struct{}

// WithCtx returns the per-request logger stored by InjectLogger, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by middleware.Logger.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
