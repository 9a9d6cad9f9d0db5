package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Daemon    DaemonConfig    `toml:"daemon"`
	Polling   PollingConfig   `toml:"polling"`
	Transfers TransfersConfig `toml:"transfers"`
	Database  DatabaseConfig  `toml:"database"`
}

// DaemonConfig contains connection settings for the peer daemon API.
type DaemonConfig struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout as a [time.Duration].
func (d DaemonConfig) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// PollingConfig contains per-kind poll cadences in milliseconds.
type PollingConfig struct {
	PlaybackIntervalMS int `toml:"playback_interval_ms"`
	TransferIntervalMS int `toml:"transfer_interval_ms"`
}

// PlaybackInterval returns the playback poll cadence, defaulting to one second.
func (p PollingConfig) PlaybackInterval() time.Duration {
	if p.PlaybackIntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(p.PlaybackIntervalMS) * time.Millisecond
}

// TransferInterval returns the transfer poll cadence, defaulting to one second.
func (p PollingConfig) TransferInterval() time.Duration {
	if p.TransferIntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(p.TransferIntervalMS) * time.Millisecond
}

// TransfersConfig contains transfer classification settings.
//
// TerminalStates lists the substrings that mark a transfer state label as
// terminal. The daemon's state vocabulary is not guaranteed to be
// exhaustively known, so the set is configurable rather than hard-coded.
type TransfersConfig struct {
	TerminalStates []string `toml:"terminal_states"`
}

// DatabaseConfig contains database connection settings.
//
// Path defaults to ":memory:"; the client keeps no state past its own
// process lifetime.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidConfig)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
