package bootstrap

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/commit-canvas/internal/infra/config"
	"github.com/yanqian/commit-canvas/pkg/logger"
)

func TestRunStopsOnContextCancel(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "127.0.0.1:0", ShutdownTimeout: time.Second}}
	server := &http.Server{Addr: cfg.HTTP.Address, Handler: http.NotFoundHandler()}
	app := NewApp(cfg, logger.Discard(), server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestRunReportsListenErrors(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "256.0.0.1:bad"}}
	server := &http.Server{Addr: cfg.HTTP.Address}
	err := NewApp(cfg, logger.Discard(), server).Run(context.Background())
	require.Error(t, err)
}
