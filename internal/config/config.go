package config

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseDriver     string
	DatabaseURL        string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	RedisURL           string
	NATSURL            string
	EventSubject       string
	BulkTimeout        time.Duration
	BulkIsolation      sql.IsolationLevel
	BulkRateLimit      int
	ReportCacheTTL     time.Duration
	CORSAllowedOrigins string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Edu Records API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "4000")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("events.subject", "edu.records")
	v.SetDefault("bulk.timeout", "15s")
	v.SetDefault("bulk.isolation", "repeatable_read")
	v.SetDefault("bulk.rate_limit", 30)
	v.SetDefault("report.cache_ttl", "2m")
	v.SetDefault("cors.allowed_origins", "*")

	lifetime, err := parseDuration(v, "db.conn_max_lifetime")
	if err != nil {
		return Config{}, err
	}

	bulkTimeout, err := parseDuration(v, "bulk.timeout")
	if err != nil {
		return Config{}, err
	}

	reportTTL, err := parseDuration(v, "report.cache_ttl")
	if err != nil {
		return Config{}, err
	}

	isolation, err := ParseIsolation(v.GetString("bulk.isolation"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseDriver:     strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:        v.GetString("database.url"),
		DBMaxOpenConns:     v.GetInt("db.max_open_conns"),
		DBMaxIdleConns:     v.GetInt("db.max_idle_conns"),
		DBConnMaxLifetime:  lifetime,
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		EventSubject:       v.GetString("events.subject"),
		BulkTimeout:        bulkTimeout,
		BulkIsolation:      isolation,
		BulkRateLimit:      v.GetInt("bulk.rate_limit"),
		ReportCacheTTL:     reportTTL,
		CORSAllowedOrigins: v.GetString("cors.allowed_origins"),
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided")
		}
	case DriverSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "file:edu.db?_foreign_keys=on"
		}
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if cfg.DBMaxOpenConns <= 0 {
		cfg.DBMaxOpenConns = 10
	}

	if cfg.BulkRateLimit <= 0 {
		cfg.BulkRateLimit = 30
	}

	return cfg, nil
}

// ParseIsolation maps a configuration value onto a transaction isolation level.
func ParseIsolation(value string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default":
		return sql.LevelDefault, nil
	case "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unsupported bulk isolation level %q", value)
	}
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, nil
}
