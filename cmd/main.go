package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/slskx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "slskx",
		Usage:    "Terminal client for a slskd-style peer daemon",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrDaemonUnavailable):
			logger.Fatalf("daemon unreachable: %v", err)
		case errors.Is(err, shared.ErrCommandRejected):
			logger.Fatalf("command rejected: %v", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
