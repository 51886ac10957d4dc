package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eink-vnc/vncprefs/internal/daemon"
	"github.com/eink-vnc/vncprefs/internal/preference"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored preferences of the configured origin",
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

		values, err := store.All(cmd.Context())
		if err != nil {
			return err
		}

		return printValues(cmd.OutOrStdout(), values)
	},
}

func printValues(w io.Writer, values map[string]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd

	_, _ = fmt.Fprintln(tw, "KEY\tVALUE\tDEFAULT")

	for _, k := range preference.Ordered(values) {
		def, ok := preference.Default(preference.Key(k))
		if !ok {
			def = "-"
		}

		_, _ = fmt.Fprintf(tw, "%s\t%q\t%s\n", k, values[k], def)
	}

	return tw.Flush()
}
