package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/antroute/internal/config"
	"github.com/katalvlaran/antroute/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:          "antroute",
	Short:        "antroute searches short closed tours over 2D points with an ant colony",
	Long:         `antroute runs Ant Colony Optimization over a set of points and reports the shortest closed tour it finds.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $ANTROUTE_CONFIG, ./antroute.yaml, ~/.config/antroute/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// loadConfig reads the config file (explicit or discovered) and applies the
// persistent flag overrides. The path is empty when defaults were used.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if explicit, _ := cmd.Flags().GetString("config"); explicit != "" {
		cfg, path, err = config.LoadFromPath(explicit)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}

	return cfg, path, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	return logging.New(level, cfg.Log.Format), nil
}
