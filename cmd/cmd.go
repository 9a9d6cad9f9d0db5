// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// statusCommand prints a one-shot view of the daemon's playback session.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the daemon's playback session",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Status,
	}
}

// playbackCommand handles playback transport operations
func playbackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playback",
		Aliases: []string{"pb"},
		Usage:   "Playback transport operations",
		Commands: []*cli.Command{
			{
				Name:   "toggle",
				Usage:  "Flip play/pause on the daemon",
				Action: r.PlaybackToggle,
			},
			{
				Name:   "stop",
				Usage:  "Stop the playback session",
				Action: r.PlaybackStop,
			},
		},
	}
}

// transfersCommand handles transfer list operations
func transfersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "transfers",
		Aliases: []string{"tr"},
		Usage:   "Transfer list operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List active or finished transfers",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "finished",
						Usage: "Show the finished partition instead of active",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (csv or markdown)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path for exports",
					},
				},
				Action: r.TransfersList,
			},
			{
				Name:  "cancel",
				Usage: "Request cancellation of one transfer",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Peer the transfer belongs to",
					},
				},
				Action: r.TransfersCancel,
			},
			{
				Name:   "clear",
				Usage:  "Request removal of finished transfers on the daemon",
				Action: r.TransfersClear,
			},
			{
				Name:  "watch",
				Usage: "Poll the transfer list and print counts until interrupted",
				Action: r.TransfersWatch,
			},
		},
	}
}

// searchCommand submits a search and lists collected responses.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search peers for files",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "wait",
				Usage: "Seconds to wait for responses to accumulate",
				Value: 3,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format (csv or markdown)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path for exports",
			},
		},
		Action: r.Search,
	}
}

// downloadCommand enqueues a download from a prior search.
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Enqueue a download on the daemon",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Peer to download from (instead of a result id)",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Remote filename to download (instead of a result id)",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Expected file size in bytes",
			},
		},
		Action: r.Download,
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the search result store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive monitoring.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive transfer and playback monitor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "token",
				Usage: "Search token to preload results for",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "Submit a search before launching",
			},
		},
		Action: r.TUI,
	}
}
