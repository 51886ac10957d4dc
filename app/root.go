// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eink-vnc/vncprefs/internal/config"
	"github.com/eink-vnc/vncprefs/internal/logger"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"

	envPrefix = "VNCPREFS"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(flagConfig, "./etc/", "Directory containing "+config.FileName)
	rootCmd.PersistentFlags().String(flagLogLevel, "warn", "Log level of the one shot commands")

	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

var rootCmd = &cobra.Command{
	Use:   "vncprefs",
	Short: "vncprefs seeds and serves the preferences of an e-ink tuned noVNC viewer",
	Long: `vncprefs owns the persisted preferences of a browser-based VNC viewer.
It seeds missing preferences with defaults tuned for e-ink displays and serves
them to the viewer without ever overwriting a value that is already set.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration from the directory given by --config or VNCPREFS_CONFIG.
func loadConfig() (config.Config, error) {
	return config.ReadConfig(viper.GetString(flagConfig))
}

// initCLILogger sets up console logging for the one shot commands.
func initCLILogger() error {
	return logger.Init(logger.CLI(viper.GetString(flagLogLevel)))
}
