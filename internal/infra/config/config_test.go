package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "http://127.0.0.1:8000", cfg.Archive.BaseURL)
	require.Equal(t, 5*time.Minute, cfg.Archive.Timeout)
	require.Greater(t, cfg.HTTP.WriteTimeout, cfg.Archive.Timeout)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
canvas:
  weekStart: mon
  maxTextLength: 20
archive:
  baseUrl: http://generator:8000
  cache:
    driver: none
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("API_URL", "http://api:8000")
	t.Setenv("ARCHIVE_CACHE_TTL", "30m")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "mon", cfg.Canvas.WeekStart)
	require.Equal(t, 20, cfg.Canvas.MaxTextLength)
	require.Equal(t, 4, cfg.Canvas.Intensity, "defaults survive partial files")
	require.Equal(t, "http://api:8000", cfg.Archive.BaseURL)
	require.Equal(t, CacheNone, cfg.Archive.Cache.Driver)
	require.Equal(t, 30*time.Minute, cfg.Archive.Cache.TTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORS.AllowedOrigins)
}

func TestArchiveURLPrecedence(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("API_URL", "http://api:8000")
	t.Setenv("ARCHIVE_API_URL", "http://archive:8000")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)
	require.Equal(t, "http://archive:8000", cfg.Archive.BaseURL)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty address":   func(c *Config) { c.HTTP.Address = "" },
		"bad intensity":   func(c *Config) { c.Canvas.Intensity = 5 },
		"short palette":   func(c *Config) { c.Canvas.Palette = []string{"#000"} },
		"empty base url":  func(c *Config) { c.Archive.BaseURL = " " },
		"unknown driver":  func(c *Config) { c.Archive.Cache.Driver = "disk" },
		"valkey no addr":  func(c *Config) { c.Archive.Cache.Driver = CacheValkey },
		"r2 no bucket":    func(c *Config) { c.Archive.Cache.Driver = CacheR2 },
		"zero rate limit": func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 },
		"short write":     func(c *Config) { c.HTTP.WriteTimeout = time.Minute },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
