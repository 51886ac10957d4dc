package daemon

import (
	"io"

	"github.com/pkg/errors"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/db"
	controller "github.com/eink-vnc/vncprefs/internal/db/controller/preference"
	"github.com/eink-vnc/vncprefs/internal/kvstore"
	"github.com/eink-vnc/vncprefs/internal/preference"
)

// nopCloser is used for stores that hold no connection.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore opens the preference backend selected by cfg.Store.Driver.
// The returned closer releases its connections.
func OpenStore(cfg *config.Config) (preference.Backend, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return preference.NewMemoryStore(nil), nopCloser{}, nil
	case config.DriverSQLite, config.DriverMySQL, config.DriverPostgres:
		gdb, err := db.Open(cfg)
		if err != nil {
			return nil, nil, err
		}

		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to get sql connection")
		}

		return controller.NewStore(gdb, cfg.Origin), sqlDB, nil
	case config.DriverKVMySQL:
		s, err := kvstore.OpenMySQL(cfg)
		if err != nil {
			return nil, nil, err
		}

		return s, s, nil
	case config.DriverKVPostgres:
		s, err := kvstore.OpenPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}

		return s, s, nil
	default:
		return nil, nil, errors.Wrap(config.ErrUnknownStoreDriver, cfg.Store.Driver)
	}
}
