package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/slskx/internal/repositories"
	"github.com/desertthunder/slskx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the configuration file if missing and initializes the
// search result store from it.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing search result store", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if _, err := repositories.NewSearchResultRepository(db); err != nil {
		return fmt.Errorf("failed to initialize search result store: %w", err)
	}

	r.writePlain("✓ Configuration ready at %s\n", configPath)
	r.writePlain("✓ Search result store ready at %s\n", config.Database.Path)
	r.writePlain("Daemon: %s\n", config.Daemon.URL)
	return nil
}
