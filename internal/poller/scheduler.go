// package poller schedules the periodic query-and-reconcile cycles that
// keep local state mirroring the daemon.
//
// The scheduler owns one independent loop per [Kind]. Each loop runs one
// cycle per tick, never two cycles of the same kind concurrently: a tick
// that fires while the previous cycle is still in flight is skipped.
// Cycles are plain functions, so tests drive ticks manually through
// [Scheduler.RunCycle] instead of waiting on wall-clock timers.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/slskx/internal/shared"
	"golang.org/x/time/rate"
)

// Kind identifies one polling loop.
type Kind int

const (
	KindPlayback Kind = iota
	KindTransfers
)

func (k Kind) String() string {
	switch k {
	case KindPlayback:
		return "playback"
	case KindTransfers:
		return "transfers"
	default:
		return ""
	}
}

// CycleFunc performs one query-and-reconcile cycle. Implementations must
// honor ctx: a cycle whose context is cancelled mid-flight discards its
// response instead of publishing it.
type CycleFunc func(ctx context.Context) error

type pollKind struct {
	cycle    CycleFunc
	interval time.Duration

	inflight sync.Mutex // held while a cycle runs

	cancel context.CancelFunc // non-nil while the loop is running
	done   chan struct{}
}

// Scheduler runs registered polling loops.
type Scheduler struct {
	mu     sync.Mutex
	logger *log.Logger
	kinds  map[Kind]*pollKind
}

// NewScheduler creates an empty Scheduler.
func NewScheduler(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Scheduler{
		logger: logger,
		kinds:  map[Kind]*pollKind{},
	}
}

// Register installs the cycle for a kind. Intervals at or below zero
// default to one second. Registering an already-running kind is an error.
func (s *Scheduler) Register(kind Kind, interval time.Duration, cycle CycleFunc) error {
	if cycle == nil {
		return fmt.Errorf("%w: nil cycle for %s", shared.ErrInvalidArgument, kind)
	}
	if interval <= 0 {
		interval = time.Second
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.kinds[kind]; ok && existing.cancel != nil {
		return fmt.Errorf("%w: %s is running", shared.ErrInvalidArgument, kind)
	}
	s.kinds[kind] = &pollKind{cycle: cycle, interval: interval}
	return nil
}

// Start begins the polling loop for a kind. Idempotent: starting a running
// kind is a no-op.
func (s *Scheduler) Start(kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pk, ok := s.kinds[kind]
	if !ok || pk.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	pk.cancel = cancel
	pk.done = make(chan struct{})

	s.logger.Debug("starting poll loop", "kind", kind, "interval", pk.interval)
	go s.loop(ctx, kind, pk)
}

// Stop cancels the polling loop for a kind. Idempotent: stopping a
// non-running kind is a no-op. An already-in-flight query is not
// interrupted, but its response is discarded by the cycle's context check
// so stopped collections cannot be resurrected.
func (s *Scheduler) Stop(kind Kind) {
	s.mu.Lock()
	pk, ok := s.kinds[kind]
	if !ok || pk.cancel == nil {
		s.mu.Unlock()
		return
	}
	cancel := pk.cancel
	pk.cancel = nil
	pk.done = nil
	s.mu.Unlock()

	s.logger.Debug("stopping poll loop", "kind", kind)
	cancel()
}

// StopAll stops every registered loop.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	kinds := make([]Kind, 0, len(s.kinds))
	for kind := range s.kinds {
		kinds = append(kinds, kind)
	}
	s.mu.Unlock()

	for _, kind := range kinds {
		s.Stop(kind)
	}
}

// Running reports whether the loop for a kind is active.
func (s *Scheduler) Running(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pk, ok := s.kinds[kind]
	return ok && pk.cancel != nil
}

// RunCycle runs one cycle for a kind immediately. If a cycle of the same
// kind is already in flight the tick is skipped, never queued behind it.
func (s *Scheduler) RunCycle(ctx context.Context, kind Kind) error {
	s.mu.Lock()
	pk, ok := s.kinds[kind]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: unregistered kind %d", shared.ErrInvalidArgument, kind)
	}

	if !pk.inflight.TryLock() {
		s.logger.Debug("skipping tick, cycle in flight", "kind", kind)
		return nil
	}
	defer pk.inflight.Unlock()

	return pk.cycle(ctx)
}

// loop paces cycles with a rate limiter at the registered cadence. Cycle
// failures are transients: previous state stays put and the next tick
// retries, so they are logged at debug and never escalated.
func (s *Scheduler) loop(ctx context.Context, kind Kind, pk *pollKind) {
	defer close(pk.done)

	limiter := rate.NewLimiter(rate.Every(pk.interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		if err := s.RunCycle(ctx, kind); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Debug("poll cycle failed", "kind", kind, "err", err)
		}
	}
}
