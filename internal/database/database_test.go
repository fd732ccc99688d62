package database

import (
	"context"
	"database/sql"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/config"
	"github.com/noah-isme/edu-records-api/internal/models"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := ConnectSQLite(MemoryDSN("database_migrate"), PoolConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, model := range []interface{}{
		&models.Student{},
		&models.Course{},
		&models.Enrollment{},
		&models.AttendanceRecord{},
		&models.ParticipationRecord{},
		&models.ScoreRecord{},
	} {
		require.True(t, db.Migrator().HasTable(model))
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	require.Equal(t, 1, fk)
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := ConnectPostgres("", PoolConfig{})
	require.Error(t, err)

	_, err = ConnectSQLite("", PoolConfig{})
	require.Error(t, err)
}

func TestTxOptions(t *testing.T) {
	require.Nil(t, TxOptions(config.DriverSQLite, sql.LevelSerializable))
	require.Nil(t, TxOptions(config.DriverPostgres, sql.LevelDefault))

	opts := TxOptions(config.DriverPostgres, sql.LevelRepeatableRead)
	require.NotNil(t, opts)
	require.Equal(t, sql.LevelRepeatableRead, opts.Isolation)
}

func TestConnectRedis(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	client, err := ConnectRedis(context.Background(), "redis://"+mini.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = ConnectRedis(context.Background(), "")
	require.Error(t, err)
}
