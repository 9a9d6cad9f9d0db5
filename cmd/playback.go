package main

import (
	"context"

	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/playback"
	"github.com/urfave/cli/v3"
)

// Status fetches the current playback snapshot, applies it to the local
// machine, and prints the resulting session.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	snap, err := r.daemon.PlaybackStatus(ctx)
	if err != nil {
		return err
	}
	r.machine.Apply(*snap)

	session := r.machine.Session()
	if cmd.Bool("json") {
		return r.writeJSON(session, cmd.Bool("pretty"))
	}

	effects := r.machine.Effects()
	r.writePlain("Status: %s\n", session.Status)
	switch session.Status {
	case models.StatusLoading:
		r.writePlain("Loading: %d%%\n", effects.ProgressPercent)
	case models.StatusPlaying, models.StatusPaused:
		r.writePlain("Track: %s • %s • %s\n", effects.Title, effects.Artist, effects.Album)
	}
	return nil
}

// PlaybackToggle flips play/pause on the daemon and prints the new state.
func (r *Runner) PlaybackToggle(ctx context.Context, cmd *cli.Command) error {
	status, err := r.machine.Toggle(ctx)
	if err != nil {
		return err
	}

	glyph := playback.GlyphPlay
	if status == models.StatusPlaying {
		glyph = playback.GlyphPause
	}
	return r.writePlain("%s Playback: %s\n", glyph, status)
}

// PlaybackStop stops the playback session.
func (r *Runner) PlaybackStop(ctx context.Context, cmd *cli.Command) error {
	if err := r.machine.Stop(ctx); err != nil {
		return err
	}
	return r.writePlain("Playback stopped\n")
}
