package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crypto-tracker/config"
	"crypto-tracker/store"
)

func openTestDB(t *testing.T) *KVStore {
	t.Helper()
	db, err := Open(&config.Config{
		Backend:    config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "kv.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewKVStore(db)
}

func TestKVStoreMissingKey(t *testing.T) {
	kv := openTestDB(t)

	_, err := kv.Get(context.Background(), "auth-status")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestKVStoreUpsert(t *testing.T) {
	ctx := context.Background()
	kv := openTestDB(t)

	require.NoError(t, kv.Set(ctx, "current-page", `"market"`))
	require.NoError(t, kv.Set(ctx, "current-page", `"portfolio"`))

	v, err := kv.Get(ctx, "current-page")
	require.NoError(t, err)
	assert.Equal(t, `"portfolio"`, v)

	var n int64
	require.NoError(t, kv.db.Model(&KVEntry{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestKVStoreBacksSlots(t *testing.T) {
	ctx := context.Background()
	kv := openTestDB(t)

	v, err := store.Load(ctx, kv, nil, "auth-status", false)
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, store.Store(ctx, kv, "auth-status", true))
	v, err = store.Load(ctx, kv, nil, "auth-status", false)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestOpenRejectsNonSQLBackend(t *testing.T) {
	_, err := Open(&config.Config{Backend: config.BackendRedis})
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestMigrateFailureClosesPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE VIEW kv_entries AS SELECT 1 AS slot_key").Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	err = migrate(db)
	require.Error(t, err)
	assert.Error(t, sqlDB.Ping())

	_, err = Open(&config.Config{Backend: config.BackendSQLite, SQLitePath: path})
	assert.Error(t, err)
}
