// Package daemon wires the preference store, the startup seeding and the web service.
package daemon

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/preference"
	"github.com/eink-vnc/vncprefs/internal/web"
)

// ErrNilConfig is returned when the daemon is created without configuration.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	store      preference.Backend
	closer     io.Closer
	webService *web.Service
}

// Start starts the web service and blocks until it stopped.
func (d *Daemon) Start() error {
	defer d.close()

	go d.webService.WaitShutdown()

	return d.webService.Start(d.cfg.Webserver.Port)
}

// Store returns the preference backend of the daemon.
func (d *Daemon) Store() preference.Backend {
	return d.store
}

func (d *Daemon) close() {
	if d.closer == nil {
		return
	}

	if err := d.closer.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close preference store")
	}
}

// New opens the store, seeds the defaults and prepares the web service.
//
// Without cfg.Seed.Required an unreachable store is not fatal: the daemon
// falls back to an in-memory store so the viewer still gets its defaults.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	store, closer, err := OpenStore(cfg)
	if err != nil {
		if cfg.Seed.Required {
			return nil, err
		}

		log.Warn().Err(err).Str("driver", cfg.Store.Driver).Msg("preference store unavailable, using in-memory store")

		store, closer = preference.NewMemoryStore(nil), nopCloser{}
	}

	if err = seed(ctx, cfg, store); err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		store:      store,
		closer:     closer,
		webService: web.New(cfg, store),
	}, nil
}
