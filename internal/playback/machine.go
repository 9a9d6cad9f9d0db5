// package playback drives the daemon's playback session through a local
// state machine.
//
// The machine consumes status snapshots from the poll loop and maps them
// onto four states (stopped, loading, playing, paused). Renderers never
// inspect raw snapshots; they read [Machine.Effects], which describes what
// the transport controls and progress indicator should show.
package playback

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/shared"
)

// Display fallbacks for absent track metadata. Applied at render time;
// stored sessions keep empty strings.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Transport glyphs show the opposite action available: pause while playing,
// play while paused.
const (
	GlyphPause = "⏸"
	GlyphPlay  = "▶"
)

// Controller defines the daemon surface the machine needs.
type Controller interface {
	// PlaybackStatus fetches the current playback snapshot. Absence of an
	// error does not guarantee a track is present.
	PlaybackStatus(ctx context.Context) (*models.PlaybackSnapshot, error)

	// TogglePlayback flips play/pause and returns the resulting playing flag.
	TogglePlayback(ctx context.Context) (bool, error)

	// StopPlayback stops the session.
	StopPlayback(ctx context.Context) error
}

// Effects describes the UI-facing side effects of the current state.
type Effects struct {
	ShowProgress    bool
	ProgressPercent int
	TransportGlyph  string
	ControlsEnabled bool
	Title           string
	Artist          string
	Album           string
}

// Machine holds the playback session and applies snapshots to it.
//
// The session is owned exclusively by the machine; [Machine.Session]
// returns copies for projection.
type Machine struct {
	mu      sync.Mutex
	session models.PlaybackSession
	daemon  Controller
	logger  *log.Logger
}

// NewMachine creates a Machine in the stopped state.
func NewMachine(daemon Controller, logger *log.Logger) *Machine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Machine{daemon: daemon, logger: logger}
}

// Apply consumes one snapshot and reports whether a transition occurred.
//
// A transition happens when the reported status differs from the held one,
// or when a track appears where none was previously known. Identical
// repeated snapshots are no-ops so an unchanged session produces no UI
// churn on every tick. Progress refreshes while loading do not count as
// transitions but are still recorded.
func (m *Machine) Apply(snap models.PlaybackSnapshot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	trackAppeared := snap.Track != nil && m.session.Track == nil
	if snap.Status == m.session.Status && !trackAppeared {
		if m.session.Status == models.StatusLoading {
			m.session.ProgressPercent = snap.ProgressPercent
		}
		return false
	}

	if snap.Status == models.StatusStopped {
		m.session = models.PlaybackSession{}
		return true
	}

	m.session.Status = snap.Status
	m.session.ProgressPercent = snap.ProgressPercent
	if snap.Track != nil {
		track := *snap.Track
		m.session.Track = &track
	}
	return true
}

// Sync performs one poll cycle: fetch the latest snapshot and apply it.
//
// Query failures are expected transients (e.g. no active session); the
// caller logs and retries on the next tick. A response arriving after ctx
// cancellation is discarded.
func (m *Machine) Sync(ctx context.Context) error {
	if m.daemon == nil {
		return fmt.Errorf("%w: playback controller not initialized", shared.ErrDaemonUnavailable)
	}

	snap, err := m.daemon.PlaybackStatus(ctx)
	if err != nil {
		m.logger.Debug("playback poll failed", "err", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		m.logger.Debug("discarding late playback snapshot", "err", err)
		return err
	}
	if snap == nil {
		return fmt.Errorf("%w: empty playback status", shared.ErrMalformedSnapshot)
	}

	m.Apply(*snap)
	return nil
}

// Toggle flips play/pause via a one-shot command and applies the returned
// playing flag directly, ahead of the next poll, for immediate feedback.
func (m *Machine) Toggle(ctx context.Context) (models.PlaybackStatus, error) {
	playing, err := m.daemon.TogglePlayback(ctx)
	if err != nil {
		return m.Session().Status, fmt.Errorf("%w: toggle: %v", shared.ErrCommandRejected, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if playing {
		m.session.Status = models.StatusPlaying
	} else {
		m.session.Status = models.StatusPaused
	}
	return m.session.Status, nil
}

// Stop issues a one-shot stop command and, on success, forces the local
// session to stopped immediately rather than waiting for the next poll.
func (m *Machine) Stop(ctx context.Context) error {
	if err := m.daemon.StopPlayback(ctx); err != nil {
		return fmt.Errorf("%w: stop: %v", shared.ErrCommandRejected, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = models.PlaybackSession{}
	return nil
}

// Session returns a copy of the current session.
func (m *Machine) Session() models.PlaybackSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session
	if m.session.Track != nil {
		track := *m.session.Track
		session.Track = &track
	}
	return session
}

// Effects projects the current session into its UI side effects.
func (m *Machine) Effects() Effects {
	session := m.Session()

	effects := Effects{
		Title:  UnknownTitle,
		Artist: UnknownArtist,
		Album:  UnknownAlbum,
	}
	if session.Track != nil {
		if session.Track.Title != "" {
			effects.Title = session.Track.Title
		}
		if session.Track.Artist != "" {
			effects.Artist = session.Track.Artist
		}
		if session.Track.Album != "" {
			effects.Album = session.Track.Album
		}
	}

	switch session.Status {
	case models.StatusLoading:
		effects.ShowProgress = true
		effects.ProgressPercent = session.ProgressPercent
	case models.StatusPlaying:
		effects.TransportGlyph = GlyphPause
		effects.ControlsEnabled = true
	case models.StatusPaused:
		effects.TransportGlyph = GlyphPlay
		effects.ControlsEnabled = true
	}
	return effects
}
