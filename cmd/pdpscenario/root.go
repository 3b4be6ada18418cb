package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdpscenario",
	Short: "pdpscenario builds pickup-and-delivery scenarios.",
	Long: `pdpscenario builds pickup-and-delivery problem scenarios with ` +
		`time windows. Scenario settings and generator parameters are read ` +
		`from a YAML file, a .env file, and PDPTW_* environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (trace, debug, info, warn, error); overrides the config")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setupLogging points the global logger at stderr with the given level. An
// empty level means info.
func setupLogging(level string) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error

		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(lvl)

	return nil
}
