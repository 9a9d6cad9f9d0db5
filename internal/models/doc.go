// Package models defines domain entities shared across the slskx client.
//
// The package contains plain value types only:
//   - [PlaybackSnapshot] / [PlaybackSession] : playback state as reported by
//     the daemon and as held locally
//   - [TrackRef] : immutable track metadata attached to a session
//   - [TransferItem] : one file transfer as reported by the daemon
//   - [SearchResult] : one peer file offer for a submitted search
//
// All state the client holds is process-lifetime only. The daemon is the
// sole source of truth: snapshots replace local state wholesale, so none of
// these types carry identity or lifecycle helpers beyond their fields.
package models
