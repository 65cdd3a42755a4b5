package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focus/internal/modules/session/domain"
	sessiondto "focus/internal/modules/session/dto"
	sessionin "focus/internal/modules/session/port/in"
	sessionout "focus/internal/modules/session/port/out"
	"focus/internal/modules/session/service"
	apperrors "focus/internal/platform/errors"
)

const (
	DefaultTickInterval = time.Second
	defaultEndTimeout   = 30 * time.Second
)

type Deps struct {
	Backend      sessionout.Backend
	Ticks        sessionout.TickSource
	Display      sessionout.Display
	Window       sessionout.Window
	Cue          sessionout.CuePlayer
	Logger       hclog.Logger
	TickInterval time.Duration
}

// Controller owns the countdown of the active session. All transitions are
// serialised on mu; collaborators are never called with mu held, except
// the tick source which only arms or cancels a goroutine.
type Controller struct {
	mu          sync.Mutex
	countdown   domain.Countdown
	gen         uint64
	starting    bool
	terminating bool
	done        *latch

	backend    sessionout.Backend
	ticks      sessionout.TickSource
	display    sessionout.Display
	window     sessionout.Window
	terminator *service.Terminator
	interval   time.Duration
	logger     hclog.Logger
}

func NewController(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	interval := deps.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Controller{
		backend:    deps.Backend,
		ticks:      deps.Ticks,
		display:    deps.Display,
		window:     deps.Window,
		terminator: service.NewTerminator(deps.Cue, deps.Display, deps.Window, deps.Backend, logger.Named("terminate")),
		interval:   interval,
		logger:     logger,
	}
}

var _ sessionin.Usecase = (*Controller)(nil)

func (c *Controller) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.Snapshot, error) {
	seconds := input.DurationSeconds
	if seconds == 0 && strings.TrimSpace(input.DurationLabel) != "" {
		seconds = domain.ParseDuration(input.DurationLabel)
	}
	session, err := domain.NewSession(input.Goal, seconds, input.BlockedSites, service.FromTargets(input.BlockedApps))
	if err != nil {
		return c.Snapshot(), err
	}

	c.mu.Lock()
	switch {
	case c.starting:
		c.mu.Unlock()
		return c.Snapshot(), apperrors.ErrStartInProgress
	case c.countdown.Phase() == domain.PhaseRunning:
		c.mu.Unlock()
		return c.Snapshot(), apperrors.ErrSessionRunning
	case c.terminating:
		c.mu.Unlock()
		return c.Snapshot(), apperrors.ErrSessionEnding
	}
	c.starting = true
	gen := c.gen
	loading := c.snapshotLocked()
	c.mu.Unlock()
	c.render(loading)

	createErr := c.backend.CreateAndStoreSession(ctx, session)

	c.mu.Lock()
	c.starting = false
	if createErr != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.render(snap)
		c.logger.Warn("session start failed", "goal", session.Goal, "error", createErr)
		return snap, createErr
	}
	if gen != c.gen {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.logger.Info("discarding stale session start", "goal", session.Goal)
		if err := c.backend.UnblockAllSites(ctx); err != nil {
			c.logger.Warn("release blocks of stale start failed", "error", err)
		}
		return snap, apperrors.ErrSessionCanceled
	}
	if err := c.countdown.Begin(session); err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err
	}
	c.gen++
	tickGen := c.gen
	c.done = newLatch()
	c.ticks.Arm(c.interval, func() { c.onTick(tickGen) })
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("session started", "goal", session.Goal, "duration", session.Duration,
		"sites", len(session.BlockedSites), "apps", len(session.BlockedApps))
	c.render(snap)
	c.resize(ctx, domain.LayoutWidget)
	return snap, nil
}

// Tick advances the countdown by one step as if the armed source fired.
func (c *Controller) Tick() {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()
	c.onTick(gen)
}

func (c *Controller) onTick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	ended := c.countdown.Tick()
	if ended {
		c.ticks.Stop()
		c.terminating = true
	}
	snap := c.snapshotLocked()
	done := c.done
	c.mu.Unlock()

	c.render(snap)
	if !ended {
		return
	}

	c.logger.Info("session ended", "goal", snap.Goal, "duration", snap.Duration)
	ctx, cancel := context.WithTimeout(context.Background(), defaultEndTimeout)
	defer cancel()
	_ = c.terminator.Run(ctx)

	c.mu.Lock()
	c.terminating = false
	c.mu.Unlock()
	if done != nil {
		done.release()
	}
}

// Stop ends a running session early and releases its blocks.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.countdown.Abort() {
		c.mu.Unlock()
		return apperrors.ErrNoActiveSession
	}
	c.ticks.Stop()
	c.gen++
	done := c.done
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("session stopped early")
	c.render(snap)
	err := c.backend.UnblockAllSites(ctx)
	if done != nil {
		done.release()
	}
	if err != nil {
		return fmt.Errorf("release blocks: %w", err)
	}
	return nil
}

func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if err := c.countdown.Reset(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.gen++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.render(snap)
	c.resize(ctx, domain.LayoutMain)
	return nil
}

// Unblock asks the backend to release every block. It never changes the
// countdown and is refused while a session is running.
func (c *Controller) Unblock(ctx context.Context) error {
	c.mu.Lock()
	running := c.countdown.Phase() == domain.PhaseRunning
	c.mu.Unlock()
	if running {
		return apperrors.ErrSessionRunning
	}
	return c.backend.UnblockAllSites(ctx)
}

// Shutdown tears the controller down: the tick source is cancelled, an
// in-flight start is marked stale and a running session is released. A
// termination sequence already under way is awaited until ctx is done.
func (c *Controller) Shutdown(ctx context.Context) {
	c.mu.Lock()
	c.ticks.Stop()
	c.gen++
	wasRunning := c.countdown.Abort()
	ending := c.terminating
	done := c.done
	c.mu.Unlock()

	if ending && done != nil {
		select {
		case <-done.ch:
			return
		case <-ctx.Done():
			c.logger.Error("session end did not finish before shutdown", "error", ctx.Err())
		}
	}
	if wasRunning {
		c.logger.Info("releasing running session on shutdown")
		if err := c.backend.UnblockAllSites(ctx); err != nil {
			c.logger.Error("release blocks on shutdown failed", "error", err)
		}
	}
	if done != nil {
		done.release()
	}
}

func (c *Controller) Snapshot() sessiondto.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until the most recently started session has finished its
// termination sequence or was stopped.
func (c *Controller) Wait(ctx context.Context) (sessiondto.Snapshot, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return c.Snapshot(), apperrors.ErrNoActiveSession
	}
	select {
	case <-done.ch:
		return c.Snapshot(), nil
	case <-ctx.Done():
		return c.Snapshot(), ctx.Err()
	}
}

func (c *Controller) History(ctx context.Context) ([]sessiondto.HistoryEntry, error) {
	entries, err := c.backend.GetAllSessions(ctx)
	if err != nil {
		return nil, err
	}
	return service.ToHistory(entries), nil
}

func (c *Controller) SearchApps(ctx context.Context, query string) ([]sessiondto.InstalledApp, error) {
	if strings.TrimSpace(query) == "" {
		return []sessiondto.InstalledApp{}, nil
	}
	apps, err := c.backend.SearchApps(ctx, query)
	if err != nil {
		return nil, err
	}
	return service.ToInstalledApps(apps), nil
}

func (c *Controller) SuggestSites(query string) []sessiondto.Site {
	return service.ToSites(domain.SearchSites(query))
}

func (c *Controller) DurationOptions() []sessiondto.DurationOption {
	out := make([]sessiondto.DurationOption, 0, len(domain.DurationOptions))
	for _, label := range domain.DurationOptions {
		out = append(out, sessiondto.DurationOption{Label: label, Seconds: domain.ParseDuration(label)})
	}
	return out
}

func (c *Controller) snapshotLocked() sessiondto.Snapshot {
	return service.ToSnapshot(c.countdown.Phase(), c.countdown.Session(), c.starting)
}

func (c *Controller) render(snap sessiondto.Snapshot) {
	if c.display != nil {
		c.display.Render(snap)
	}
}

func (c *Controller) resize(ctx context.Context, layout domain.Layout) {
	if c.window == nil {
		return
	}
	if err := c.window.Resize(ctx, layout); err != nil {
		c.logger.Warn("resize failed", "layout", layout, "error", err)
	}
}

type latch struct {
	ch   chan struct{}
	once sync.Once
}

func newLatch() *latch {
	return &latch{ch: make(chan struct{})}
}

func (l *latch) release() {
	l.once.Do(func() { close(l.ch) })
}
