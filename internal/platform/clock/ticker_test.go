package clock_test

import (
	"sync/atomic"
	"testing"
	"time"

	"focus/internal/platform/clock"
)

func TestTickerRearmCancelsPreviousSource(t *testing.T) {
	t.Parallel()
	tk := clock.NewTicker()
	var first, second atomic.Int32

	tk.Arm(5*time.Millisecond, func() { first.Add(1) })
	time.Sleep(30 * time.Millisecond)
	tk.Arm(5*time.Millisecond, func() { second.Add(1) })
	frozen := first.Load()
	time.Sleep(30 * time.Millisecond)
	tk.Stop()

	if frozen == 0 {
		t.Fatalf("first source never fired")
	}
	if got := first.Load(); got > frozen+1 {
		t.Fatalf("first source kept firing after re-arm: %d -> %d", frozen, got)
	}
	if second.Load() == 0 {
		t.Fatalf("second source never fired")
	}
}

func TestTickerStopHaltsCallbacks(t *testing.T) {
	t.Parallel()
	tk := clock.NewTicker()
	var calls atomic.Int32
	tk.Arm(5*time.Millisecond, func() { calls.Add(1) })
	time.Sleep(25 * time.Millisecond)
	tk.Stop()
	after := calls.Load()
	time.Sleep(25 * time.Millisecond)
	if got := calls.Load(); got > after+1 {
		t.Fatalf("callbacks continued after stop: %d -> %d", after, got)
	}
	tk.Stop()
}

func TestTickerStopFromInsideCallback(t *testing.T) {
	t.Parallel()
	tk := clock.NewTicker()
	done := make(chan struct{})
	var calls atomic.Int32
	tk.Arm(5*time.Millisecond, func() {
		if calls.Add(1) == 1 {
			tk.Stop()
			close(done)
		}
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("callback never ran")
	}
	time.Sleep(25 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one call, got %d", got)
	}
}
