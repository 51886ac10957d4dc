package daemon

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/preference"
)

// seed fills in the preference defaults once at startup.
// A failure only aborts startup when cfg.Seed.Required is set.
func seed(ctx context.Context, cfg *config.Config, store preference.Store) error {
	if cfg.Seed.Disabled {
		log.Info().Msg("preference seeding disabled")
		return nil
	}

	if _, err := preference.Seed(ctx, store, cfg.Origin); err != nil {
		if cfg.Seed.Required {
			return err
		}

		log.Warn().Err(err).Str("origin", cfg.Origin).Msg("preference seeding failed, viewer keeps its built-in defaults")
	}

	return nil
}
