package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	"focus/internal/modules/session/domain"
	"focus/internal/modules/session/dto"
)

// ConsoleSurface is the display and window of the headless CLI. Countdown
// lines are printed once per minute and on phase changes.
type ConsoleSurface struct {
	mu     sync.Mutex
	w      io.Writer
	last   dto.Snapshot
	layout domain.Layout
}

func NewConsoleSurface(w io.Writer) *ConsoleSurface {
	return &ConsoleSurface{w: w, layout: domain.LayoutMain}
}

func (s *ConsoleSurface) Render(snap dto.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.last
	s.last = snap
	switch {
	case snap.Starting && !prev.Starting:
		fmt.Fprintf(s.w, "Starting %q...\n", snap.Goal)
	case snap.Phase != prev.Phase && snap.Phase == dto.PhaseRunning:
		fmt.Fprintf(s.w, "Focusing on %q for %s\n", snap.Goal, domain.FormatSpan(snap.Duration))
	case snap.Phase == dto.PhaseRunning && snap.Remaining != prev.Remaining && snap.Remaining%60 == 0:
		fmt.Fprintf(s.w, "%s remaining\n", snap.Clock)
	case snap.Phase == dto.PhaseIdle && prev.Phase == dto.PhaseRunning:
		fmt.Fprintln(s.w, "Session stopped")
	}
}

func (s *ConsoleSurface) ShowSummary(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "Session complete: %s (%s)\n", s.last.Goal, domain.FormatSpan(s.last.Duration))
	return err
}

func (s *ConsoleSurface) Resize(_ context.Context, layout domain.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout = layout
	return nil
}

func (s *ConsoleSurface) Layout() domain.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}
