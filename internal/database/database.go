package database

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/edu-records-api/internal/config"
)

// PoolConfig tunes the connection pool backing the gorm handle.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect opens the configured database and applies pool settings.
func Connect(cfg config.Config) (*gorm.DB, error) {
	pool := PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}

	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		return ConnectSQLite(cfg.DatabaseURL, pool)
	default:
		return ConnectPostgres(cfg.DatabaseURL, pool)
	}
}

// ConnectPostgres establishes a connection to the PostgreSQL database using the provided DSN.
func ConnectPostgres(dsn string, pool PoolConfig) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := applyPool(db, pool); err != nil {
		return nil, err
	}

	return db, nil
}

// ConnectSQLite opens a SQLite database. Foreign keys must be enabled through the DSN
// (for example "_foreign_keys=on") for delete protection to hold.
func ConnectSQLite(dsn string, pool PoolConfig) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite dsn must not be empty")
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if err := applyPool(db, pool); err != nil {
		return nil, err
	}

	return db, nil
}

// TxOptions returns the options used for bulk write transactions on the given driver.
// SQLite serialises writers itself and does not accept explicit isolation levels.
func TxOptions(driver string, level sql.IsolationLevel) *sql.TxOptions {
	if driver == config.DriverSQLite || level == sql.LevelDefault {
		return nil
	}
	return &sql.TxOptions{Isolation: level}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

func applyPool(db *gorm.DB, pool PoolConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql pool: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	return nil
}

// MemoryDSN builds a shared-cache in-memory SQLite DSN with foreign keys enabled.
// Each distinct name yields an isolated database.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
}
