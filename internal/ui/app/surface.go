package app

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"focus/internal/modules/session/domain"
	sessiondto "focus/internal/modules/session/dto"
)

// SnapshotMsg carries a controller render into the program.
type SnapshotMsg struct{ Snapshot sessiondto.Snapshot }

// LayoutMsg switches the screen; it is the terminal rendition of a window
// resize.
type LayoutMsg struct{ Layout domain.Layout }

// SummaryMsg is sent when a session completed.
type SummaryMsg struct{}

var errDetached = errors.New("tui is not running")

// Surface is the display and window of the TUI. Controller calls arrive on
// other goroutines and are forwarded with Program.Send.
type Surface struct {
	mu      sync.Mutex
	program *tea.Program
}

func NewSurface() *Surface {
	return &Surface{}
}

// Attach connects the surface to a program; nil detaches it.
func (s *Surface) Attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

func (s *Surface) Render(snap sessiondto.Snapshot) {
	_ = s.send(SnapshotMsg{Snapshot: snap})
}

func (s *Surface) ShowSummary(_ context.Context) error {
	return s.send(SummaryMsg{})
}

func (s *Surface) Resize(_ context.Context, layout domain.Layout) error {
	return s.send(LayoutMsg{Layout: layout})
}

func (s *Surface) send(msg tea.Msg) error {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p == nil {
		return errDetached
	}
	p.Send(msg)
	return nil
}
