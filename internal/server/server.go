// Package server boots the runtime (store, cache, log sink) and runs the HTTP
// listener until SIGINT or SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/eduportal/app/controllers"
	"github.com/shashiranjanraj/eduportal/app/repositories"
	"github.com/shashiranjanraj/eduportal/config"
	"github.com/shashiranjanraj/eduportal/internal/kernel"
	"github.com/shashiranjanraj/eduportal/pkg/cache"
	"github.com/shashiranjanraj/eduportal/pkg/database"
	"github.com/shashiranjanraj/eduportal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Runtime holds the long-lived connections opened by Boot.
type Runtime struct {
	Driver string
	Store  *repositories.Store
	Cache  *cache.Cache
	Ping   controllers.Pinger

	indexes func(context.Context) error
	closers []func(context.Context) error
}

// Boot loads config and opens the store selected by DB_DRIVER. Redis is
// optional: when it cannot be reached the cache is disabled and a warning is
// logged. The caller must Close the runtime.
func Boot(ctx context.Context) (*Runtime, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	rt := &Runtime{Driver: config.DatabaseDriver()}

	if rt.Driver == repositories.DriverMongo {
		if err := database.Connect(ctx); err != nil {
			return nil, err
		}
		rt.Ping = database.Ping
		rt.indexes = func(ctx context.Context) error { return repositories.EnsureIndexes(ctx, database.DB) }
		rt.closers = append(rt.closers, database.Disconnect)

		if config.LogToMongo() {
			mh, err := logger.EnableMongo(config.MongoURI(), config.MongoDatabase())
			if err != nil {
				logger.Warn("mongo log sink disabled", "error", err.Error())
			} else {
				rt.closers = append(rt.closers, func(context.Context) error { mh.Close(); return nil })
			}
		}
	}

	store, err := repositories.Open(rt.Driver, database.DB, config.DBTimeout())
	if err != nil {
		rt.Close(context.Background())
		return nil, err
	}
	rt.Store = store

	cacheCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	rt.Cache, err = cache.Connect(cacheCtx)
	if err != nil {
		logger.Warn("catalog cache disabled", "error", err.Error())
	} else {
		rt.closers = append(rt.closers, func(context.Context) error { return rt.Cache.Close() })
	}

	return rt, nil
}

// EnsureIndexes creates the store indexes; a no-op for the memory driver.
func (rt *Runtime) EnsureIndexes(ctx context.Context) error {
	if rt.indexes == nil {
		return nil
	}
	return rt.indexes(ctx)
}

// prepareIndexes is EnsureIndexes for serving. Existing data that already
// holds duplicate usernames cannot take the unique index; the service then
// runs on the signup lookup alone and db:indexes reports the conflict.
func (rt *Runtime) prepareIndexes(ctx context.Context) error {
	err := rt.EnsureIndexes(ctx)
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		logger.Warn("unique index not built, duplicate usernames in store",
			"index", repositories.UsernameIndex,
			"error", err.Error(),
		)
		return nil
	default:
		return fmt.Errorf("indexes: %w", err)
	}
}

// Close releases everything Boot opened, last opened first.
func (rt *Runtime) Close(ctx context.Context) {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			logger.Warn("shutdown", "error", err.Error())
		}
	}
	rt.closers = nil
}

// Start boots the runtime, ensures indexes and serves until ctx is cancelled
// or the process is signalled.
func Start(ctx context.Context) error {
	rt, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())

	if err := rt.prepareIndexes(ctx); err != nil {
		return err
	}

	k := kernel.NewHTTPKernel(kernel.DepsFromConfig(rt.Store, rt.Cache, rt.Ping))
	return Serve(ctx, ":"+config.AppPort(), k.Handler())
}

// Serve listens on addr and drains in-flight requests on shutdown.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "env", config.AppEnv())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
