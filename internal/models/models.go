// package models defines the data model for the slskx daemon client
package models

// PlaybackStatus enumerates the states a playback session can be in.
type PlaybackStatus int

const (
	StatusStopped PlaybackStatus = iota
	StatusLoading
	StatusPlaying
	StatusPaused
)

func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return ""
	}
}

// TrackRef is an immutable reference to the track behind a playback session.
//
// Any field may be empty; display fallbacks ("Unknown Title", etc.) are
// applied at render time, never stored here.
type TrackRef struct {
	Title  string
	Artist string
	Album  string
}

// PlaybackSnapshot is one point-in-time playback report from the daemon.
type PlaybackSnapshot struct {
	Status          PlaybackStatus
	ProgressPercent int       // 0-100, meaningful only while loading
	Track           *TrackRef // nil when no track is associated
}

// PlaybackSession is the locally-held playback state.
//
// Track is nil iff Status is StatusStopped.
type PlaybackSession struct {
	Status          PlaybackStatus
	ProgressPercent int
	Track           *TrackRef
}

// TransferItem represents one file transfer as reported by the daemon.
//
// ID is opaque and stable for the lifetime of the transfer on the daemon
// side. State is a free-form label ("InProgress", "Completed, Succeeded",
// ...); terminal classification is derived from it, never stored.
type TransferItem struct {
	ID               string
	Filename         string
	Username         string
	State            string
	BytesTransferred int64
	TotalSize        int64
	AverageSpeed     float64
	PercentComplete  float64
}

// SearchResult represents one file offered by a peer in response to a search.
type SearchResult struct {
	ID          string
	Token       string // search the result belongs to
	Username    string
	Filename    string
	Size        int64
	BitRate     int
	QueueLength int
	HasFreeSlot bool
}
