package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/eduportal/app/repositories"
	"github.com/shashiranjanraj/eduportal/config"
	"github.com/shashiranjanraj/eduportal/pkg/logger"
)

func TestServeStopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeReportsListenErrors(t *testing.T) {
	err := Serve(context.Background(), "127.0.0.1:-1", http.NotFoundHandler())
	assert.Error(t, err)
}

func TestBootMemoryDriver(t *testing.T) {
	mr := miniredis.RunT(t)
	config.Set("DB_DRIVER", "memory")
	config.Set("REDIS_ADDR", mr.Addr())
	t.Cleanup(func() { config.Set("DB_DRIVER", "mongo") })

	rt, err := Boot(context.Background())
	require.NoError(t, err)
	defer rt.Close(context.Background())

	assert.Equal(t, "memory", rt.Driver)
	assert.NotNil(t, rt.Store.Users)
	assert.Nil(t, rt.Ping)
	assert.True(t, rt.Cache.Enabled())
	assert.NoError(t, rt.EnsureIndexes(context.Background()))
}

func TestBootWithoutRedisDisablesCache(t *testing.T) {
	config.Set("DB_DRIVER", "memory")
	config.Set("REDIS_ADDR", "127.0.0.1:1")
	t.Cleanup(func() { config.Set("DB_DRIVER", "mongo") })

	rt, err := Boot(context.Background())
	require.NoError(t, err)
	defer rt.Close(context.Background())

	assert.False(t, rt.Cache.Enabled())
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.L
	logger.L = slog.New(slog.NewTextHandler(&buf, nil))
	t.Cleanup(func() { logger.L = prev })
	return &buf
}

func TestPrepareIndexesToleratesDuplicateUsernames(t *testing.T) {
	logs := captureLog(t)
	dup := mongo.CommandError{
		Code:    11000,
		Message: "E11000 duplicate key error collection: mern_auth.users index: username_unique dup key: { username: \"alice\" }",
	}
	rt := &Runtime{
		Driver:  repositories.DriverMongo,
		indexes: func(context.Context) error { return fmt.Errorf("users index %s: %w", repositories.UsernameIndex, dup) },
	}

	assert.NoError(t, rt.prepareIndexes(context.Background()), "serving continues on legacy duplicates")
	assert.Contains(t, logs.String(), "unique index not built")
	assert.Contains(t, logs.String(), "index="+repositories.UsernameIndex)

	assert.Error(t, rt.EnsureIndexes(context.Background()), "db:indexes still reports the conflict")
}

func TestPrepareIndexesFailsOnOtherErrors(t *testing.T) {
	rt := &Runtime{
		Driver:  repositories.DriverMongo,
		indexes: func(context.Context) error { return errors.New("server selection timeout") },
	}

	err := rt.prepareIndexes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indexes: server selection timeout")
}
