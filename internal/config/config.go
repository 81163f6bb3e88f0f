package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// RedisConfig points at the search-result cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SearchConfig tunes the listing and room request search endpoints.
type SearchConfig struct {
	// PreviewLimit caps every search result set at the store boundary.
	PreviewLimit int
	CacheTTL     time.Duration
	RateLimit    RateLimitConfig
}

// LogConfig selects zap level and encoding.
type LogConfig struct {
	Level  string
	Format string
}

// ImageConfig selects where uploaded listing photos are stored.
type ImageConfig struct {
	Backend    string
	ServiceURL string
	StorageDir string
	PublicURL  string
	MaxFiles   int
}

// Config aggregates application-wide configuration values.
type Config struct {
	Env         string
	DatabaseURL string
	JWTSecret   string
	Port        string
	TokenTTL    time.Duration
	PhoneRegion string
	BodyLimit   string
	CORSOrigins []string

	Redis  RedisConfig
	Search SearchConfig
	Log    LogConfig
	Images ImageConfig
}

// Load reads configuration from the environment (and an optional .env file) and applies defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Env:         strings.ToLower(v.GetString("ENV")),
		DatabaseURL: v.GetString("DATABASE_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		Port:        v.GetString("PORT"),
		TokenTTL:    parseDuration(v.GetString("JWT_TTL")),
		PhoneRegion: strings.ToUpper(v.GetString("PHONE_REGION")),
		BodyLimit:   v.GetString("BODY_LIMIT"),
		CORSOrigins: splitAndTrim(v.GetString("CORS_ORIGINS")),
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Images: ImageConfig{
			Backend:    strings.ToLower(v.GetString("IMAGE_BACKEND")),
			ServiceURL: v.GetString("IMAGE_SERVICE_URL"),
			StorageDir: v.GetString("IMAGE_STORAGE_DIR"),
			PublicURL:  strings.TrimRight(v.GetString("IMAGE_PUBLIC_URL"), "/"),
			MaxFiles:   v.GetInt("IMAGE_MAX_FILES"),
		},
	}

	limit, err := strconv.Atoi(strings.TrimSpace(v.GetString("SEARCH_PREVIEW_LIMIT")))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("invalid SEARCH_PREVIEW_LIMIT value: %q", v.GetString("SEARCH_PREVIEW_LIMIT"))
	}
	cfg.Search.PreviewLimit = limit

	ttl, err := time.ParseDuration(v.GetString("SEARCH_CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_CACHE_TTL value: %w", err)
	}
	cfg.Search.CacheTTL = ttl

	rl, err := parseRateLimit(v.GetString("RATE_LIMIT_SEARCH"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SEARCH value: %w", err)
	}
	cfg.Search.RateLimit = rl

	switch cfg.Images.Backend {
	case "local", "http":
	default:
		return nil, fmt.Errorf("unsupported IMAGE_BACKEND %q", cfg.Images.Backend)
	}
	if cfg.Images.Backend == "http" && cfg.Images.ServiceURL == "" {
		return nil, errors.New("IMAGE_SERVICE_URL is required when IMAGE_BACKEND=http")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "dev-secret")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("PHONE_REGION", "IN")
	v.SetDefault("BODY_LIMIT", "16K")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SEARCH_PREVIEW_LIMIT", "4")
	v.SetDefault("SEARCH_CACHE_TTL", "1m")
	v.SetDefault("RATE_LIMIT_SEARCH", "30/min")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("IMAGE_BACKEND", "local")
	v.SetDefault("IMAGE_SERVICE_URL", "")
	v.SetDefault("IMAGE_STORAGE_DIR", "./uploads")
	v.SetDefault("IMAGE_PUBLIC_URL", "/uploads")
	v.SetDefault("IMAGE_MAX_FILES", 10)
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func splitAndTrim(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
