package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Scraper  ScraperConfig

	// ScoringConfigPath points at an optional YAML file with matching weights.
	ScoringConfigPath string
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// AutoMigrate applies embedded migrations when the server starts.
	AutoMigrate bool

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	Issuer           string
	Audience         string
}

type ScraperConfig struct {
	Workers          int
	RateLimit        int
	MinTextLength    int
	HeadlessFallback bool
	Timeout          time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     optDefault("DB_HOST", "localhost"),
		DBPort:     optDefault("DB_PORT", "5432"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		AutoMigrate: optBool("DB_AUTO_MIGRATE", true),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     opt("JWT_ACCESS_SECRET"),
		RefreshSecret:    opt("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
		Issuer:           optDefault("JWT_ISSUER", cfg.App.AppName),
		Audience:         optDefault("JWT_AUDIENCE", "careerpath-api"),
	}

	cfg.Scraper = ScraperConfig{
		Workers:          optInt("SCRAPER_WORKERS", 4),
		RateLimit:        optInt("SCRAPER_RATE_LIMIT", 2),
		MinTextLength:    optInt("SCRAPER_MIN_TEXT_LENGTH", 200),
		HeadlessFallback: optBool("SCRAPER_HEADLESS_FALLBACK", true),
		Timeout:          optDuration("SCRAPER_TIMEOUT", 25*time.Second),
	}

	cfg.ScoringConfigPath = opt("SCORING_CONFIG")

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
