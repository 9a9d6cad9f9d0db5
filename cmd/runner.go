package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/slskx/internal/playback"
	"github.com/desertthunder/slskx/internal/poller"
	"github.com/desertthunder/slskx/internal/repositories"
	"github.com/desertthunder/slskx/internal/services"
	"github.com/desertthunder/slskx/internal/shared"
	"github.com/desertthunder/slskx/internal/transfers"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	daemon     services.Service
	machine    *playback.Machine
	manager    *transfers.Manager
	scheduler  *poller.Scheduler
	results    *repositories.SearchResultRepository
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Daemon     services.Service
	Results    *repositories.SearchResultRepository
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// Omitted dependencies are built from the config: the daemon client from the
// daemon section, the search result store as an in-memory database. Both
// polling loops are registered on the scheduler but not started; one-shot
// commands drive cycles through [poller.Scheduler.RunCycle] and only the TUI
// starts the loops.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Daemon.Timeout()}
	}
	if opts.Daemon == nil {
		opts.Daemon = services.NewDaemonService(opts.Config.Daemon.URL, opts.Config.Daemon.APIKey, opts.HTTPClient)
	}
	if opts.Results == nil {
		if db, err := shared.NewDatabase(opts.Config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, opts.Config.Database.MaxOpenConns, opts.Config.Database.MaxIdleConns)
			if repo, err := repositories.NewSearchResultRepository(db); err == nil {
				opts.Results = repo
			} else {
				opts.Logger.Warn("search result store unavailable", "error", err)
			}
		} else {
			opts.Logger.Warn("database unavailable", "error", err)
		}
	}

	machine := playback.NewMachine(opts.Daemon, opts.Logger)
	classifier := transfers.NewClassifier(opts.Config.Transfers.TerminalStates)
	manager := transfers.NewManager(opts.Daemon, transfers.NewReconciler(classifier), opts.Logger)

	scheduler := poller.NewScheduler(opts.Logger)
	if err := scheduler.Register(poller.KindPlayback, opts.Config.Polling.PlaybackInterval(), machine.Sync); err != nil {
		opts.Logger.Warn("failed to register playback loop", "error", err)
	}
	if err := scheduler.Register(poller.KindTransfers, opts.Config.Polling.TransferInterval(), manager.Sync); err != nil {
		opts.Logger.Warn("failed to register transfers loop", "error", err)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		daemon:     opts.Daemon,
		machine:    machine,
		manager:    manager,
		scheduler:  scheduler,
		results:    opts.Results,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		statusCommand, playbackCommand, transfersCommand, searchCommand, downloadCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeExport writes export bytes to the given path, or to the runner's
// output when no path is set.
func (r *Runner) writeExport(data []byte, outputPath string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return r.writePlain("Saved to %s\n", outputPath)
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
