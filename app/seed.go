package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eink-vnc/vncprefs/internal/daemon"
	"github.com/eink-vnc/vncprefs/internal/preference"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the defaults of all unset preferences into the configured store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err = initCLILogger(); err != nil {
			return err
		}

		store, closer, err := daemon.OpenStore(&cfg)
		if err != nil {
			return err
		}

		defer func() {
			if cerr := closer.Close(); cerr != nil {
				log.Error().Err(cerr).Msg("failed to close preference store")
			}
		}()

		report, err := preference.Seed(cmd.Context(), store, cfg.Origin)
		if err != nil {
			return err
		}

		printReport(cmd.OutOrStdout(), report)

		return nil
	},
}

func printReport(w io.Writer, r *preference.Report) {
	_, _ = fmt.Fprintf(w, "origin: %s\n", r.Origin)
	_, _ = fmt.Fprintf(w, "seeded: %s\n", joinKeys(r.Seeded))
	_, _ = fmt.Fprintf(w, "kept:   %s\n", joinKeys(r.Kept))
}

func joinKeys(keys []preference.Key) string {
	if len(keys) == 0 {
		return "-"
	}

	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = string(k)
	}

	return strings.Join(s, ", ")
}
