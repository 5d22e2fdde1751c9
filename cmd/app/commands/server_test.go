package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	startErr error
	stop     chan struct{}
	shutdown atomic.Int32
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stop: make(chan struct{})}
}

func (f *fakeServer) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stop
	return nil
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	if f.shutdown.Add(1) == 1 {
		close(f.stop)
	}
	return nil
}

func TestServe(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("StopsOnContextCancel", func(t *testing.T) {
		api := newFakeServer(nil)
		metricsSrv := newFakeServer(nil)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- serve(ctx, logger, api, metricsSrv) }()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return")
		}
		assert.Equal(t, int32(1), api.shutdown.Load())
		assert.Equal(t, int32(1), metricsSrv.shutdown.Load())
	})

	t.Run("ShutsDownOthersWhenOneFails", func(t *testing.T) {
		startErr := errors.New("address in use")
		api := newFakeServer(nil)
		metricsSrv := newFakeServer(startErr)

		err := serve(context.Background(), logger, api, metricsSrv)

		require.ErrorIs(t, err, startErr)
		assert.Equal(t, int32(1), api.shutdown.Load())
	})
}
