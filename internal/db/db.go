// Package db opens the SQL database the preferences are stored in.
package db

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/db/dsn"
	"github.com/eink-vnc/vncprefs/internal/db/models"
	"github.com/eink-vnc/vncprefs/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

// ErrUnsupportedDriver is returned for drivers that are not SQL engines.
var ErrUnsupportedDriver = errors.New("store driver is not a sql driver")

// Open opens the configured SQL engine and migrates the preference table.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(cfg)})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.Store.Driver)
	}

	if cfg.Store.Driver == config.DriverSQLite {
		// sqlite allows a single writer
		if sqlDB, errDB := db.DB(); errDB == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the preference table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Preference{}); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		path, err := dsn.SQLite(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve sqlite path")
		}

		if path != ":memory:" {
			if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil { //nolint:mnd
				return nil, errors.Wrap(err, "failed to create sqlite directory")
			}
		}

		return sqlite.Open(path), nil
	case config.DriverMySQL:
		return mysql.Open(dsn.MySQL(cfg)), nil
	case config.DriverPostgres:
		return postgres.Open(dsn.PostgresURL(cfg)), nil
	default:
		return nil, errors.Wrap(ErrUnsupportedDriver, cfg.Store.Driver)
	}
}

// newGormLogger routes gorm's messages into zerolog; SQL traces only show at trace level.
func newGormLogger(cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Warn
	if lvl, err := zerolog.ParseLevel(cfg.Log.LogLevel); err == nil && lvl == zerolog.TraceLevel {
		level = gormlogger.Info
	}

	return gormlogger.New(
		stdlogger.NewComponent("gorm", zerolog.WarnLevel),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
