package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Identity IdentityConfig
	Session  SessionConfig
	Upload   UploadConfig
	Enricher EnricherConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	BaseURL     string
}

type DatabaseConfig struct {
	Driver string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MongoURI      string
	MongoDatabase string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type IdentityConfig struct {
	APIKey      string
	ClientID    string
	BaseURL     string
	RedirectURI string
	Timeout     time.Duration
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type UploadConfig struct {
	Dir          string
	PublicPrefix string
	MaxBytes     int64
}

type EnricherConfig struct {
	MaxConcurrentLookups int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

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
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
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
		BaseURL:     strings.TrimRight(optDefault("APP_BASE_URL", "http://localhost:3000"), "/"),
	}

	cfg.Database = DatabaseConfig{
		Driver:                strings.ToLower(optDefault("DB_DRIVER", DriverPostgres)),
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		MongoURI:              opt("MONGO_URI"),
		MongoDatabase:         optDefault("MONGO_DATABASE", "jobboard"),
	}
	switch cfg.Database.Driver {
	case DriverPostgres:
	case DriverMongo:
		if cfg.Database.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	default:
		invalid = append(invalid, "DB_DRIVER")
	}

	cfg.Redis = RedisConfig{
		Addr:     optDefault("REDIS_ADDR", "localhost:6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
	}

	cfg.Identity = IdentityConfig{
		APIKey:      req("WORKOS_API_KEY"),
		ClientID:    req("WORKOS_CLIENT_ID"),
		BaseURL:     strings.TrimRight(optDefault("WORKOS_BASE_URL", "https://api.workos.com"), "/"),
		RedirectURI: optDefault("WORKOS_REDIRECT_URI", cfg.App.BaseURL+"/auth/callback"),
		Timeout:     optDuration("WORKOS_TIMEOUT", 10*time.Second),
	}

	cfg.Session = SessionConfig{
		Secret:     req("SESSION_SECRET"),
		TTL:        optDuration("SESSION_TTL", 7*24*time.Hour),
		CookieName: optDefault("SESSION_COOKIE_NAME", "jobboard_session"),
		Secure:     optBool("SESSION_COOKIE_SECURE", cfg.App.Environment == "production"),
	}

	cfg.Upload = UploadConfig{
		Dir:          optDefault("UPLOAD_DIR", "uploads"),
		PublicPrefix: "/" + strings.Trim(optDefault("UPLOAD_PUBLIC_PREFIX", "/uploads"), "/"),
		MaxBytes:     int64(optInt("UPLOAD_MAX_BYTES", 5<<20)),
	}

	cfg.Enricher = EnricherConfig{
		MaxConcurrentLookups: optInt("ENRICH_MAX_CONCURRENT_LOOKUPS", 8),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
