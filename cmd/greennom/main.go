package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/greennom/config"
)

const version = "0.1.0"

var (
	settings = viper.New()
	cfg      = config.Defaults()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "greennom",
		Short:   "Resilient lossless parsing tools",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings = config.New(configPath)
			if err := bindFlags(cmd); err != nil {
				return err
			}
			loaded, err := config.Load(settings, configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			var logFile *string
			if cfg.LogFile != "" {
				logFile = &cfg.LogFile
			}
			commonlog.Configure(cfg.Verbosity, logFile)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .greennom.yaml in the working or home directory)")
	rootCmd.PersistentFlags().IntP("verbosity", "v", 0, "log verbosity (0 errors only, 4 debug)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newLexCmd())
	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

var flagKeys = map[string]string{
	"verbosity": "verbosity",
	"log-file":  "log_file",
	"format":    "format",
	"positions": "positions",
	"trace":     "trace",
}

// bindFlags lets flags given on the command line override config values.
func bindFlags(cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := settings.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
