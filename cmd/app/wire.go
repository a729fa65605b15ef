//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/commit-canvas/internal/bootstrap"
	"github.com/yanqian/commit-canvas/internal/domain/chart"
	"github.com/yanqian/commit-canvas/internal/infra/archive/repogen"
	"github.com/yanqian/commit-canvas/internal/infra/config"
	httpiface "github.com/yanqian/commit-canvas/internal/interface/http"
	"github.com/yanqian/commit-canvas/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChartConfig,
		provideArchiveClient,
		provideArchiveStore,
		chart.NewService,
		wire.Bind(new(chart.ArchiveClient), new(*repogen.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
