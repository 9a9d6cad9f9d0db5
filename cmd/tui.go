package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/slskx/internal/shared"
	"github.com/desertthunder/slskx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive transfer and playback monitor.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.daemon == nil {
		return fmt.Errorf("%w: daemon client not initialized", shared.ErrDaemonUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/slskx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	token := cmd.String("token")
	query := cmd.String("query")
	if query != "" {
		if token, err = r.daemon.Search(ctx, query); err != nil {
			return err
		}
		r.logger.Info("search submitted", "token", token)
		if results, err := r.daemon.SearchResponses(ctx, token); err == nil && r.results != nil {
			if err := r.results.ReplaceAll(token, results); err != nil {
				r.logger.Warn("failed to store search results", "error", err)
			}
		}
	}

	model := ui.NewModel(ctx, ui.ModelOpts{
		Machine:   r.machine,
		Manager:   r.manager,
		Scheduler: r.scheduler,
		Results:   r.results,
		Daemon:    r.daemon,
		Token:     token,
		Query:     query,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	defer r.scheduler.StopAll()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
