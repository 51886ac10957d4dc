package kvstore

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/db/dsn"
)

// defaultGCInterval is the expiry sweep period of the drivers. Preferences never expire, so this only bounds
// the cleanup goroutine of the driver.
const defaultGCInterval = time.Hour

// OpenMySQL returns a Store backed by the gofiber mysql storage driver.
func OpenMySQL(cfg *config.Config) (*Store, error) {
	storage, err := openDriver(func() fiber.Storage {
		return mysql.New(mysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         cfg.Store.KV.Table,
			Reset:         cfg.Store.KV.Reset,
			GCInterval:    gcInterval(cfg),
		})
	})
	if err != nil {
		return nil, err
	}

	return New(storage, cfg.Origin), nil
}

// OpenPostgres returns a Store backed by the gofiber postgres storage driver.
func OpenPostgres(cfg *config.Config) (*Store, error) {
	storage, err := openDriver(func() fiber.Storage {
		return postgres.New(postgres.Config{
			ConnectionURI: dsn.PostgresURL(cfg),
			Table:         cfg.Store.KV.Table,
			Reset:         cfg.Store.KV.Reset,
			GCInterval:    gcInterval(cfg),
		})
	})
	if err != nil {
		return nil, err
	}

	return New(storage, cfg.Origin), nil
}

func gcInterval(cfg *config.Config) time.Duration {
	if cfg.Store.KV.GCInterval > 0 {
		return cfg.Store.KV.GCInterval
	}

	return defaultGCInterval
}

// openDriver converts the panic gofiber drivers raise on connection
// failure into an error.
func openDriver(open func() fiber.Storage) (storage fiber.Storage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("open kv storage: %v", r)
		}
	}()

	return open(), nil
}
