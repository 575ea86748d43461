// Package database owns the single store handle the rest of the core shares.
//
// Open once at startup, pass the *Store to every repository, Close on exit.
// Reads go through DB; every mutation goes through Write, which serialises
// writers and wraps the work in a transaction.
package database

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
	pkglog "github.com/menumanagerpro/menumanager/pkg/logger"
)

// sqliteBusyTimeoutMS bounds how long SQLite waits on a lock held by
// another process before failing with SQLITE_BUSY.
const sqliteBusyTimeoutMS = 5000

type Store struct {
	db     *gorm.DB
	driver string

	// writeMu admits one writer at a time across every repository.
	writeMu sync.Mutex
}

// Open connects to the store and verifies it is usable. Any failure is
// reported as STORAGE_UNAVAILABLE.
func Open(driver, dsn string) (*Store, error) {
	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "database: build dialector")
	}

	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // use pkg/logger, not GORM's own
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "database: open")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "database: get sql.DB")
	}

	if driver == "sqlite" {
		// One connection: pragmas are per connection, and an in-memory
		// database lives only as long as its connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		for _, pragma := range []string{
			"PRAGMA foreign_keys = ON",
			fmt.Sprintf("PRAGMA busy_timeout = %d", sqliteBusyTimeoutMS),
		} {
			if err := db.Exec(pragma).Error; err != nil {
				_ = sqlDB.Close()
				return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "database: "+pragma)
			}
		}
	} else {
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetMaxIdleConns(2)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "database: ping")
	}

	pkglog.Debug("database: connected", "driver", driver)
	return &Store{db: db, driver: driver}, nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

// Driver reports the dialect name the store was opened with.
func (s *Store) Driver() string { return s.driver }

// DB returns the connection bound to ctx, for reads.
func (s *Store) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Write runs fn inside a transaction while holding the writer lock. The
// transaction commits when fn returns nil and rolls back on an error or a
// panic; the lock is released on every path.
func (s *Store) Write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.DB(ctx).Transaction(fn)
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.Wrap(apperr.CodeStorageUnavailable, err, "database: get sql.DB")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.Wrap(apperr.CodeStorageUnavailable, err, "database: ping")
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
