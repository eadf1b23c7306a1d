package app

import (
	"context"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}
	logger := log.New(log.Writer(), "", 0)

	require.NotPanics(t, func() {
		gracefulShutdown(srv, logger, 100*time.Millisecond)
	})
}

func TestRun_ShutsDownOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container := dig.New()

	require.NoError(t, container.Provide(func() context.Context { return ctx }))
	require.NoError(t, container.Provide(func() *log.Logger {
		return log.New(log.Writer(), "", 0)
	}))
	require.NoError(t, container.Provide(func(gotCtx context.Context) (*mongo.Client, error) {
		return lazyClient(gotCtx, "mongodb://127.0.0.1:27017")
	}))
	require.NoError(t, container.Provide(func() *http.Server {
		return &http.Server{
			Addr:    "127.0.0.1:0",
			Handler: http.NewServeMux(),
		}
	}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	require.NoError(t, run(container))
}

func TestConnectDbWithRetry_GivesUp(t *testing.T) {
	orig := newClient
	t.Cleanup(func() { newClient = orig })

	calls := 0
	newClient = func(context.Context, string) (*mongo.Client, error) {
		calls++
		return nil, context.DeadlineExceeded
	}

	_, err := connectDbWithRetry(context.Background(), "mongodb://127.0.0.1:1", 3, time.Millisecond)
	require.Error(t, err)
	require.Equal(t, 3, calls)
}

func TestConnectDbWithRetry_StopsOnContextCancel(t *testing.T) {
	orig := newClient
	t.Cleanup(func() { newClient = orig })

	newClient = func(context.Context, string) (*mongo.Client, error) {
		return nil, context.DeadlineExceeded
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := connectDbWithRetry(ctx, "mongodb://127.0.0.1:1", 5, time.Second)
	require.ErrorIs(t, err, context.Canceled)
}
