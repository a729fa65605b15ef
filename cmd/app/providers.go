package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/commit-canvas/internal/domain/calendar"
	"github.com/yanqian/commit-canvas/internal/domain/chart"
	"github.com/yanqian/commit-canvas/internal/domain/contrib"
	"github.com/yanqian/commit-canvas/internal/infra/archive/repogen"
	"github.com/yanqian/commit-canvas/internal/infra/archivestore"
	"github.com/yanqian/commit-canvas/internal/infra/config"
)

func provideChartConfig(cfg *config.Config) (chart.Config, error) {
	ws, err := calendar.ParseWeekStart(cfg.Canvas.WeekStart)
	if err != nil {
		return chart.Config{}, fmt.Errorf("canvas.weekStart: %w", err)
	}
	scale, err := contrib.ParseCountScale(cfg.Canvas.CountScale)
	if err != nil {
		return chart.Config{}, fmt.Errorf("canvas.countScale: %w", err)
	}
	if _, err := contrib.ParseTimePolicy(cfg.Canvas.TimeMode, cfg.Canvas.CustomTime); err != nil {
		return chart.Config{}, fmt.Errorf("canvas.timeMode: %w", err)
	}
	palette := chart.DefaultPalette
	if len(cfg.Canvas.Palette) == len(palette.Colors) {
		palette.Name = cfg.Canvas.PaletteName
		if palette.Name == "" {
			palette.Name = "custom"
		}
		copy(palette.Colors[:], cfg.Canvas.Palette)
	}
	return chart.Config{
		DefaultWeekStart: ws,
		DefaultSpacing:   cfg.Canvas.Spacing,
		DefaultXOffset:   cfg.Canvas.XOffsetWeeks,
		DefaultIntensity: cfg.Canvas.Intensity,
		MaxTextLength:    cfg.Canvas.MaxTextLength,
		CountScale:       scale,
		TimeMode:         cfg.Canvas.TimeMode,
		CustomTime:       cfg.Canvas.CustomTime,
		Palette:          palette,
		CacheTTL:         cfg.Archive.Cache.TTL,
	}, nil
}

func provideArchiveClient(cfg *config.Config) *repogen.Client {
	return repogen.NewClient(cfg.Archive.BaseURL, cfg.Archive.Timeout)
}

// provideArchiveStore picks the configured cache and falls back to memory when
// the remote backend is unreachable. The none driver disables caching.
func provideArchiveStore(cfg *config.Config, logger *slog.Logger) chart.ArchiveStore {
	cacheCfg := cfg.Archive.Cache
	switch cacheCfg.Driver {
	case config.CacheNone:
		logger.Info("archive cache disabled")
		return nil
	case config.CacheValkey:
		store, err := newValkeyStore(cacheCfg.Valkey)
		if err != nil {
			logger.Error("valkey archive cache unavailable, falling back to memory store", "error", err)
			return archivestore.NewMemoryStore()
		}
		logger.Info("valkey archive cache enabled", "addr", cacheCfg.Valkey.Addr)
		return store
	case config.CacheR2:
		r2 := cacheCfg.R2
		store, err := archivestore.NewR2Store(archivestore.R2Options{
			Endpoint:  r2.Endpoint,
			AccessKey: r2.AccessKey,
			SecretKey: r2.SecretKey,
			Bucket:    r2.Bucket,
			Region:    r2.Region,
			Prefix:    r2.Prefix,
		}, logger)
		if err != nil {
			logger.Error("r2 archive cache unavailable, falling back to memory store", "error", err)
			return archivestore.NewMemoryStore()
		}
		logger.Info("r2 archive cache enabled", "bucket", r2.Bucket)
		return store
	default:
		return archivestore.NewMemoryStore()
	}
}

func newValkeyStore(cfg config.ValkeyConfig) (*archivestore.ValkeyStore, error) {
	opt, err := buildValkeyOptions(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("invalid valkey configuration: %w", err)
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}
	return archivestore.NewValkeyStore(client, cfg.Prefix), nil
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
