// Package ui implements the bubbletea TUI for slskx.
//
// The TUI has two logical pages: transfers (active/finished tabs with live
// counts and a playback bar) and search results. Polling is owned by the
// poll scheduler, not the view: the UI only starts and stops loops on page
// changes and re-reads published state on a refresh tick. Leaving the
// transfers page stops the transfers loop; the playback loop always runs.
package ui
