package services

import (
	"context"

	"github.com/desertthunder/slskx/internal/models"
)

// Service is the full daemon surface consumed by the CLI runner. The
// polling layers depend on narrower interfaces they declare themselves.
type Service interface {
	// Name returns the service name.
	Name() string

	// PlaybackStatus fetches the current playback snapshot.
	PlaybackStatus(ctx context.Context) (*models.PlaybackSnapshot, error)

	// TogglePlayback flips play/pause and returns the resulting playing flag.
	TogglePlayback(ctx context.Context) (bool, error)

	// StopPlayback stops the playback session.
	StopPlayback(ctx context.Context) error

	// TransferList fetches a full snapshot of the daemon's transfers.
	TransferList(ctx context.Context) ([]models.TransferItem, error)

	// CancelTransfer asks the daemon to cancel one transfer.
	CancelTransfer(ctx context.Context, id, username string) error

	// ClearFinishedTransfers asks the daemon to drop its finished transfers.
	ClearFinishedTransfers(ctx context.Context) error

	// Search submits a search and returns the daemon's token for it.
	Search(ctx context.Context, query string) (string, error)

	// SearchResponses fetches the peer file offers collected so far.
	SearchResponses(ctx context.Context, token string) ([]models.SearchResult, error)

	// EnqueueDownload asks the daemon to download a file from a peer.
	EnqueueDownload(ctx context.Context, username, filename string, size int64) error
}

var _ Service = (*DaemonService)(nil)
