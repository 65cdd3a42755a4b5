package out

import (
	"context"
	"os"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focus/internal/modules/blocker/domain"
	blockerout "focus/internal/modules/blocker/port/out"
)

type EnforcerOptions struct {
	Lister   blockerout.ProcessLister
	Signaler blockerout.ProcessSignaler
	Notifier blockerout.Notifier
	Interval time.Duration
	Grace    time.Duration
	Logger   hclog.Logger
}

// ProcEnforcer terminates processes of blocked apps on every poll. One poll
// goroutine runs at a time; Start replaces the previous one.
type ProcEnforcer struct {
	lister   blockerout.ProcessLister
	signaler blockerout.ProcessSignaler
	notifier blockerout.Notifier
	interval time.Duration
	grace    time.Duration
	spared   map[int]struct{}
	logger   hclog.Logger

	mu       sync.Mutex
	apps     []domain.AppTarget
	attempts map[string]int
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewProcEnforcer(opts EnforcerOptions) *ProcEnforcer {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	grace := opts.Grace
	if grace <= 0 {
		grace = domain.KillGrace
	}
	return &ProcEnforcer{
		lister:   opts.Lister,
		signaler: opts.Signaler,
		notifier: opts.Notifier,
		interval: interval,
		grace:    grace,
		spared:   map[int]struct{}{os.Getpid(): {}, os.Getppid(): {}},
		logger:   logger,
		attempts: map[string]int{},
	}
}

func (e *ProcEnforcer) Start(_ context.Context, apps []domain.AppTarget) error {
	e.stop()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.apps = append([]domain.AppTarget(nil), apps...)
	e.attempts = map[string]int{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	e.cancel = cancel
	e.done = done
	go e.loop(ctx, done)
	e.logger.Info("app blocker started", "apps", len(apps))
	return nil
}

// Stop halts polling and returns the per-app block counts of the session.
func (e *ProcEnforcer) Stop(_ context.Context) (map[string]int, error) {
	e.stop()
	e.mu.Lock()
	defer e.mu.Unlock()
	attempts := e.attempts
	e.attempts = map[string]int{}
	e.apps = nil
	return attempts, nil
}

func (e *ProcEnforcer) Attempts() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]int, len(e.attempts))
	for k, v := range e.attempts {
		out[k] = v
	}
	return out
}

func (e *ProcEnforcer) stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	e.logger.Info("app blocker stopped")
}

func (e *ProcEnforcer) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		e.Sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep performs one scan: every matching process gets SIGTERM, and
// SIGKILL when it survives the grace period.
func (e *ProcEnforcer) Sweep(ctx context.Context) {
	e.mu.Lock()
	apps := append([]domain.AppTarget(nil), e.apps...)
	e.mu.Unlock()
	if len(apps) == 0 {
		return
	}
	procs, err := e.lister.List(ctx)
	if err != nil {
		e.logger.Warn("process scan failed", "error", err)
		return
	}

	var victims []int
	for _, app := range apps {
		pids := []int{}
		for _, p := range procs {
			if _, ok := e.spared[p.PID]; ok {
				continue
			}
			if domain.MatchesProcess(p, app.Executable) {
				pids = append(pids, p.PID)
			}
		}
		if len(pids) == 0 {
			continue
		}
		e.mu.Lock()
		e.attempts[app.Label]++
		e.mu.Unlock()
		e.logger.Info("blocked app detected", "app", app.Label, "pids", pids)
		if e.notifier != nil {
			if err := e.notifier.Notify(ctx, app.Label+" Blocked", "This app is blocked during your focus session"); err != nil {
				e.logger.Debug("block notification failed", "error", err)
			}
		}
		for _, pid := range pids {
			if err := e.signaler.Terminate(pid); err != nil {
				e.logger.Debug("terminate failed", "pid", pid, "error", err)
			}
			victims = append(victims, pid)
		}
	}
	if len(victims) == 0 {
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(e.grace):
	}
	for _, pid := range victims {
		if !e.signaler.Alive(pid) {
			continue
		}
		if err := e.signaler.Kill(pid); err != nil {
			e.logger.Warn("kill failed", "pid", pid, "error", err)
		}
	}
}
