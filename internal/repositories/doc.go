// Package repositories provides the persistence layer for search results.
//
// Results live in SQLite, by default an in-memory database: the client
// keeps no state past its own process lifetime, but a queryable store makes
// re-listing and selecting results cheap while a search session is open.
// Each poll of the daemon's responses endpoint replaces the stored result
// set for its token wholesale, mirroring how the transfer reconciler treats
// snapshots.
package repositories
