package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRegister(t *testing.T) {
	s := NewScheduler(nil)

	if err := s.Register(KindPlayback, time.Second, nil); err == nil {
		t.Error("expected error for nil cycle")
	}

	if err := s.Register(KindPlayback, time.Second, func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := s.RunCycle(context.Background(), KindTransfers); err == nil {
		t.Error("expected error for unregistered kind")
	}
}

func TestSchedulerManualTicks(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler(nil)
	if err := s.Register(KindTransfers, time.Second, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for range 3 {
		if err := s.RunCycle(context.Background(), KindTransfers); err != nil {
			t.Fatalf("cycle failed: %v", err)
		}
	}

	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 cycles, got %d", got)
	}
}

func TestSchedulerSkipsOverlappingTicks(t *testing.T) {
	block := make(chan struct{})
	entered := make(chan struct{})
	var calls atomic.Int32

	s := NewScheduler(nil)
	if err := s.Register(KindTransfers, time.Second, func(ctx context.Context) error {
		calls.Add(1)
		entered <- struct{}{}
		<-block
		return nil
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	go s.RunCycle(context.Background(), KindTransfers)
	<-entered

	// A second tick while the first cycle is in flight must be skipped,
	// not run concurrently or queued.
	if err := s.RunCycle(context.Background(), KindTransfers); err != nil {
		t.Fatalf("skipped tick should not error: %v", err)
	}
	close(block)

	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 cycle, got %d", got)
	}
}

func TestSchedulerStartStopIdempotent(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler(nil)
	if err := s.Register(KindPlayback, 5*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	s.Start(KindPlayback)
	s.Start(KindPlayback) // no-op
	if !s.Running(KindPlayback) {
		t.Error("expected playback loop running")
	}

	deadline := time.After(time.Second)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("loop never ticked")
		case <-time.After(time.Millisecond):
		}
	}

	s.Stop(KindPlayback)
	s.Stop(KindPlayback) // no-op
	if s.Running(KindPlayback) {
		t.Error("expected playback loop stopped")
	}
}

func TestSchedulerIndependentKinds(t *testing.T) {
	s := NewScheduler(nil)
	for _, kind := range []Kind{KindPlayback, KindTransfers} {
		if err := s.Register(kind, time.Minute, func(ctx context.Context) error { return nil }); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}

	s.Start(KindPlayback)
	s.Start(KindTransfers)

	// Navigating away stops only the transfers loop.
	s.Stop(KindTransfers)
	if !s.Running(KindPlayback) {
		t.Error("playback loop must keep running")
	}
	if s.Running(KindTransfers) {
		t.Error("transfers loop must be stopped")
	}

	s.StopAll()
	if s.Running(KindPlayback) {
		t.Error("expected all loops stopped")
	}
}

func TestSchedulerLoopSurvivesFailures(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler(nil)
	if err := s.Register(KindTransfers, time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("daemon unreachable")
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	s.Start(KindTransfers)
	defer s.Stop(KindTransfers)

	deadline := time.After(time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("loop did not retry after a failed cycle")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestKindString(t *testing.T) {
	if KindPlayback.String() != "playback" || KindTransfers.String() != "transfers" {
		t.Error("unexpected kind names")
	}
}
