package transfers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/slskx/internal/models"
	"github.com/desertthunder/slskx/internal/shared"
)

// Controller defines the daemon surface the manager needs.
// This abstraction allows for easier testing and decoupling from the
// concrete HTTP client.
type Controller interface {
	// TransferList fetches a full snapshot of in-flight and finished
	// transfers. Order is irrelevant; ids are unique within the snapshot.
	TransferList(ctx context.Context) ([]models.TransferItem, error)

	// CancelTransfer asks the daemon to cancel one transfer.
	CancelTransfer(ctx context.Context, id, username string) error

	// ClearFinishedTransfers asks the daemon to drop its finished transfers.
	ClearFinishedTransfers(ctx context.Context) error
}

// Manager drives transfer reconciliation and one-shot transfer commands.
//
// Sync is the poll cycle: query, reconcile, publish. Cancel and
// ClearFinished are fire-and-forget; their effect is only observed when a
// later poll returns a snapshot that reflects it. A cancel must not
// optimistically vanish the item from the active view.
type Manager struct {
	daemon     Controller
	reconciler *Reconciler
	store      *Store
	logger     *log.Logger
}

// NewManager creates a Manager around the given daemon controller.
func NewManager(daemon Controller, reconciler *Reconciler, logger *log.Logger) *Manager {
	if reconciler == nil {
		reconciler = NewReconciler(nil)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{
		daemon:     daemon,
		reconciler: reconciler,
		store:      NewStore(),
		logger:     logger,
	}
}

// Sync performs one query-and-reconcile cycle.
//
// On query failure the previously published collections are left untouched;
// polling failures are expected transients and the next tick retries. A
// response that arrives after ctx is cancelled is discarded rather than
// published, so stopping the poller cannot resurrect stale collections.
func (m *Manager) Sync(ctx context.Context) error {
	if m.daemon == nil {
		return fmt.Errorf("%w: transfer controller not initialized", shared.ErrDaemonUnavailable)
	}

	snapshot, err := m.daemon.TransferList(ctx)
	if err != nil {
		m.logger.Debug("transfer poll failed", "err", err)
		return err
	}

	if err := ctx.Err(); err != nil {
		m.logger.Debug("discarding late transfer snapshot", "err", err)
		return err
	}

	m.store.Publish(m.reconciler.Reconcile(snapshot))
	return nil
}

// Cancel issues a one-shot cancel request for the given transfer.
//
// The local collections are deliberately not touched; the item stays in the
// active partition until a subsequent poll confirms the cancellation.
func (m *Manager) Cancel(ctx context.Context, id, username string) error {
	if id == "" {
		return fmt.Errorf("%w: transfer id", shared.ErrMissingArgument)
	}
	if err := m.daemon.CancelTransfer(ctx, id, username); err != nil {
		return fmt.Errorf("%w: cancel %s: %v", shared.ErrCommandRejected, id, err)
	}
	return nil
}

// ClearFinished issues a one-shot clear request for finished transfers.
// As with Cancel, success only shows up on the next poll.
func (m *Manager) ClearFinished(ctx context.Context) error {
	if err := m.daemon.ClearFinishedTransfers(ctx); err != nil {
		return fmt.Errorf("%w: clear finished: %v", shared.ErrCommandRejected, err)
	}
	return nil
}

// Collections returns a point-in-time copy of the published collections.
func (m *Manager) Collections() Collections {
	return m.store.Snapshot()
}

// Counts returns the current tab counts.
func (m *Manager) Counts() (active, finished int) {
	return m.store.Counts()
}
