// Package services implements the HTTP client for the peer daemon.
//
// The daemon is an opaque collaborator reached through a narrow
// request/response contract: two query operations returning full snapshots
// (playback status, transfer list), a handful of fire-and-forget commands
// (toggle, stop, cancel, clear finished), and the search surface
// (submit search, fetch responses, enqueue download).
//
// [DaemonService] is the concrete implementation; the polling and command
// layers consume it through the narrow interfaces they declare themselves
// (playback.Controller, transfers.Controller). [APIService] is the raw
// request layer underneath, reusable for ad-hoc daemon calls.
//
// Query failures are transients by contract: callers retry on the next
// poll tick and never surface them to the user.
package services
