package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/slskx/internal/formatter"
	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Search submits a query, waits for responses to accumulate, stores them in
// the local result store, and prints them ordered by desirability.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	token, err := r.daemon.Search(ctx, query)
	if err != nil {
		return err
	}
	r.logger.Info("search submitted", "token", token)

	// Responses accumulate on the daemon as peers answer; poll the listing
	// once a second until the wait window closes, keeping the last snapshot.
	deadline := time.Now().Add(time.Duration(cmd.Int("wait")) * time.Second)
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	var results []models.SearchResult
	for {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if results, err = r.daemon.SearchResponses(ctx, token); err != nil {
			return err
		}
		if !time.Now().Before(deadline) {
			break
		}
	}

	if r.results != nil {
		if err := r.results.ReplaceAll(token, results); err != nil {
			return err
		}
		if ordered, err := r.results.List(token); err == nil {
			results = ordered
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}

	switch format := cmd.String("format"); format {
	case "csv":
		data, err := formatter.ExportSearchResultsCSV(results)
		if err != nil {
			return err
		}
		return r.writeExport(data, cmd.String("output"))
	case "markdown", "md":
		data, err := formatter.ExportSearchResultsMarkdown(query, results)
		if err != nil {
			return err
		}
		return r.writeExport(data, cmd.String("output"))
	case "":
	default:
		return fmt.Errorf("%w: format %q", shared.ErrInvalidArgument, format)
	}

	r.writePlainHeader(fmt.Sprintf("Search: %s (token %s)", query, token))
	if len(results) == 0 {
		return r.writePlain("No responses yet. Re-run with a longer --wait.\n")
	}
	for _, result := range results {
		r.writeResultRow(result)
	}
	r.writePlain("\nDownload with: slskx download <id>\n")
	return nil
}

func (r *Runner) writeResultRow(result models.SearchResult) {
	slot := "queued"
	if result.HasFreeSlot {
		slot = "free slot"
	}
	r.writePlain("%s  %s\n", result.ID, result.Filename)
	r.writePlain("    %s • %s • %d kbps • queue %d • %s\n",
		result.Username,
		formatter.FormatBytes(result.Size),
		result.BitRate,
		result.QueueLength,
		slot,
	)
}

// Download enqueues a download, either from a stored search result id or
// from an explicit username and filename. The new transfer appears in the
// transfer list on a later poll.
func (r *Runner) Download(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	filename := cmd.String("file")
	size := int64(cmd.Int("size"))

	if id := cmd.StringArg("id"); id != "" {
		if r.results == nil {
			return fmt.Errorf("%w: search result store", shared.ErrDaemonUnavailable)
		}
		result, err := r.results.Get(id)
		if err != nil {
			return err
		}
		username = result.Username
		filename = result.Filename
		size = result.Size
	}

	if username == "" || filename == "" {
		return fmt.Errorf("%w: a result id or --username and --file", shared.ErrMissingArgument)
	}

	if err := r.daemon.EnqueueDownload(ctx, username, filename, size); err != nil {
		return err
	}
	return r.writePlain("Queued %s from %s\n", filename, username)
}
