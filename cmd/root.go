// Package cmd is the rentease command line.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sidhant-sriv/rentease-api/config"
	"github.com/sidhant-sriv/rentease-api/logger"
)

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "rentease",
		Short:        "RentEase rental marketplace API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to an optional YAML config file")

	serve := serveCmd(&configPath)
	root.AddCommand(serve, migrateCmd(&configPath))

	// Running the bare binary starts the server.
	root.RunE = serve.RunE
	return root
}

// setup loads the configuration and builds the process logger.
func setup(configPath string) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logger.New(os.Stdout, logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(log)
	return cfg, log, nil
}
