package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/desertthunder/slskx/internal/formatter"
	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/poller"
	"github.com/desertthunder/slskx/internal/shared"
	"github.com/urfave/cli/v3"
)

// TransfersList runs one poll cycle and prints the requested partition.
func (r *Runner) TransfersList(ctx context.Context, cmd *cli.Command) error {
	if err := r.scheduler.RunCycle(ctx, poller.KindTransfers); err != nil {
		return err
	}

	collections := r.manager.Collections()
	title := "Active Transfers"
	items := collections.ActiveList()
	if cmd.Bool("finished") {
		title = "Finished Transfers"
		items = collections.FinishedList()
	}

	if cmd.Bool("json") {
		return r.writeJSON(items, cmd.Bool("pretty"))
	}

	switch format := cmd.String("format"); format {
	case "csv":
		data, err := formatter.ExportTransfersCSV(items)
		if err != nil {
			return err
		}
		return r.writeExport(data, cmd.String("output"))
	case "markdown", "md":
		data, err := formatter.ExportTransfersMarkdown(title, items)
		if err != nil {
			return err
		}
		return r.writeExport(data, cmd.String("output"))
	case "":
	default:
		return fmt.Errorf("%w: format %q", shared.ErrInvalidArgument, format)
	}

	r.writePlainHeader(title)
	if len(items) == 0 {
		return r.writePlain("No transfers.\n")
	}
	for _, item := range items {
		r.writeTransferRow(item)
	}
	return nil
}

func (r *Runner) writeTransferRow(item models.TransferItem) {
	r.writePlain("%s  %s\n", item.ID, item.Filename)
	r.writePlain("    %s • %s • %.1f%% • %s of %s • %s\n",
		item.Username,
		item.State,
		item.PercentComplete,
		formatter.FormatBytes(item.BytesTransferred),
		formatter.FormatBytes(item.TotalSize),
		formatter.FormatSpeed(item.AverageSpeed),
	)
}

// TransfersCancel requests cancellation of one transfer. The item stays in
// the active list until a later poll reflects the daemon's state.
func (r *Runner) TransfersCancel(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: transfer id", shared.ErrMissingArgument)
	}

	if err := r.manager.Cancel(ctx, id, cmd.String("username")); err != nil {
		return err
	}
	return r.writePlain("Cancel requested for %s\n", id)
}

// TransfersClear requests removal of finished transfers on the daemon.
func (r *Runner) TransfersClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.manager.ClearFinished(ctx); err != nil {
		return err
	}
	return r.writePlain("Clear requested\n")
}

// TransfersWatch polls the transfer list at the configured cadence and
// prints the partition counts after each cycle until interrupted.
func (r *Runner) TransfersWatch(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	interval := r.config.Polling.TransferInterval()
	r.writePlain("Watching transfers every %s (ctrl+c to stop)\n", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := r.scheduler.RunCycle(ctx, poller.KindTransfers); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Debug("poll cycle failed", "err", err)
		}
		active, finished := r.manager.Counts()
		r.writePlain("%s  active: %d  finished: %d\n", time.Now().Format(time.TimeOnly), active, finished)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
