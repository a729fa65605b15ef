package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache drivers for generated archives.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheValkey = "valkey"
	CacheR2     = "r2"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Canvas  CanvasConfig  `yaml:"canvas"`
	Archive ArchiveConfig `yaml:"archive"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	CORS            CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware on archive generation.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// CanvasConfig holds the defaults applied to canvas requests.
type CanvasConfig struct {
	WeekStart     string   `yaml:"weekStart"`
	Intensity     int      `yaml:"intensity"`
	Spacing       int      `yaml:"spacing"`
	XOffsetWeeks  int      `yaml:"xOffsetWeeks"`
	MaxTextLength int      `yaml:"maxTextLength"`
	CountScale    string   `yaml:"countScale"`
	TimeMode      string   `yaml:"timeMode"`
	CustomTime    string   `yaml:"customTime"`
	PaletteName   string   `yaml:"paletteName"`
	Palette       []string `yaml:"palette"`
}

// ArchiveConfig points at the repository generator and its cache.
type ArchiveConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
	Cache   CacheConfig   `yaml:"cache"`
}

// CacheConfig selects where reproducible archives are kept.
type CacheConfig struct {
	Driver string        `yaml:"driver"`
	TTL    time.Duration `yaml:"ttl"`
	Valkey ValkeyConfig  `yaml:"valkey"`
	R2     R2Config      `yaml:"r2"`
}

// ValkeyConfig contains connection information for cache storage.
type ValkeyConfig struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// R2Config contains the S3-compatible bucket settings.
type R2Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("CANVAS_WEEK_START"); v != "" {
		cfg.Canvas.WeekStart = v
	}
	if v := os.Getenv("CANVAS_MAX_TEXT_LENGTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Canvas.MaxTextLength = parsed
		}
	}
	if v := os.Getenv("CANVAS_COUNT_SCALE"); v != "" {
		cfg.Canvas.CountScale = v
	}
	if v := os.Getenv("CANVAS_TIME_MODE"); v != "" {
		cfg.Canvas.TimeMode = v
	}
	if v := os.Getenv("CANVAS_CUSTOM_TIME"); v != "" {
		cfg.Canvas.CustomTime = v
	}
	// API_URL is the name the generator's frontend has always used.
	if v := os.Getenv("API_URL"); v != "" {
		cfg.Archive.BaseURL = v
	}
	if v := os.Getenv("ARCHIVE_API_URL"); v != "" {
		cfg.Archive.BaseURL = v
	}
	if v := os.Getenv("ARCHIVE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Archive.Timeout = parsed
		}
	}
	if v := os.Getenv("ARCHIVE_CACHE_DRIVER"); v != "" {
		cfg.Archive.Cache.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("ARCHIVE_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Archive.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("ARCHIVE_VALKEY_ADDR"); v != "" {
		cfg.Archive.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("R2_ENDPOINT"); v != "" {
		cfg.Archive.Cache.R2.Endpoint = v
	}
	if v := os.Getenv("R2_ACCESS_KEY"); v != "" {
		cfg.Archive.Cache.R2.AccessKey = v
	}
	if v := os.Getenv("R2_SECRET_KEY"); v != "" {
		cfg.Archive.Cache.R2.SecretKey = v
	}
	if v := os.Getenv("R2_BUCKET"); v != "" {
		cfg.Archive.Cache.R2.Bucket = v
	}
	if v := os.Getenv("R2_REGION"); v != "" {
		cfg.Archive.Cache.R2.Region = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    6 * time.Minute,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 6,
				Burst:             2,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
			},
		},
		Canvas: CanvasConfig{
			WeekStart:     "sun",
			Intensity:     4,
			Spacing:       1,
			XOffsetWeeks:  1,
			MaxTextLength: 32,
			CountScale:    "raw",
			TimeMode:      "random",
			CustomTime:    "12:00:00",
		},
		Archive: ArchiveConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: 5 * time.Minute,
			Cache: CacheConfig{
				Driver: CacheMemory,
				TTL:    time.Hour,
				Valkey: ValkeyConfig{Prefix: "contribgrid"},
				R2:     R2Config{Region: "auto", Prefix: "archives"},
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ShutdownTimeout < 0 {
		return errors.New("http.shutdownTimeout cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Canvas.Intensity < 1 || c.Canvas.Intensity > 4 {
		return errors.New("canvas.intensity must be between 1 and 4")
	}
	if c.Canvas.Spacing < 0 {
		return errors.New("canvas.spacing cannot be negative")
	}
	if c.Canvas.MaxTextLength <= 0 {
		return errors.New("canvas.maxTextLength must be positive")
	}
	if n := len(c.Canvas.Palette); n != 0 && n != 5 {
		return errors.New("canvas.palette must list exactly 5 colors")
	}
	if strings.TrimSpace(c.Archive.BaseURL) == "" {
		return errors.New("archive.baseUrl cannot be empty")
	}
	if c.Archive.Timeout <= 0 {
		return errors.New("archive.timeout must be positive")
	}
	if c.HTTP.WriteTimeout > 0 && c.HTTP.WriteTimeout <= c.Archive.Timeout {
		return errors.New("http.writeTimeout must exceed archive.timeout")
	}
	if c.Archive.Cache.TTL < 0 {
		return errors.New("archive.cache.ttl cannot be negative")
	}
	switch c.Archive.Cache.Driver {
	case "", CacheNone, CacheMemory:
	case CacheValkey:
		if strings.TrimSpace(c.Archive.Cache.Valkey.Addr) == "" {
			return errors.New("archive.cache.valkey.addr cannot be empty when the valkey cache is enabled")
		}
	case CacheR2:
		r2 := c.Archive.Cache.R2
		if r2.Endpoint == "" || r2.Bucket == "" || r2.AccessKey == "" || r2.SecretKey == "" {
			return errors.New("archive.cache.r2 requires endpoint, bucket, accessKey and secretKey")
		}
	default:
		return fmt.Errorf("archive.cache.driver %q is not supported", c.Archive.Cache.Driver)
	}
	return nil
}
