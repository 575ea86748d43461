package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

type counter struct {
	ID    uint `gorm:"primaryKey"`
	Value int
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.DB(context.Background()).AutoMigrate(&counter{}))
	return store
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.True(t, apperr.IsCode(err, apperr.CodeStorageUnavailable))
}

func TestOpen_UnwritableLocation(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "dir", "app.db")
	_, err := Open("sqlite", dsn)
	assert.True(t, apperr.IsCode(err, apperr.CodeStorageUnavailable))
}

func TestOpen_EnablesForeignKeys(t *testing.T) {
	store := newTestStore(t)

	var enabled int
	require.NoError(t, store.DB(context.Background()).Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
	assert.Equal(t, "sqlite", store.Driver())
}

func TestWrite_CommitsOnSuccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&counter{Value: 1}).Error
	})
	require.NoError(t, err)

	var n int64
	require.NoError(t, store.DB(ctx).Model(&counter{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestWrite_RollsBackOnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Write(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&counter{Value: 1}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, store.DB(ctx).Model(&counter{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestWrite_ReleasesLockAfterPanic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = store.Write(ctx, func(tx *gorm.DB) error {
			tx.Create(&counter{Value: 1})
			panic("writer exploded")
		})
	})

	// A second writer must not deadlock and the first insert must be gone.
	require.NoError(t, store.Write(ctx, func(tx *gorm.DB) error {
		return tx.Create(&counter{Value: 2}).Error
	}))

	var values []int
	require.NoError(t, store.DB(ctx).Model(&counter{}).Pluck("value", &values).Error)
	assert.Equal(t, []int{2}, values)
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
