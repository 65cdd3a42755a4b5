package domain

import (
	"fmt"
	"strings"

	apperrors "focus/internal/platform/errors"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnding
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseEnding:
		return "ending"
	default:
		return "idle"
	}
}

type AppTarget struct {
	Label      string
	Executable string
	Icon       string
}

// Session is the active focus attempt. Remaining stays within 0..Duration.
type Session struct {
	Goal         string
	Duration     int
	Remaining    int
	BlockedSites []string
	BlockedApps  []AppTarget
}

func NewSession(goal string, durationSeconds int, sites []string, apps []AppTarget) (Session, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return Session{}, fmt.Errorf("%w: goal is required", apperrors.ErrInvalidInput)
	}
	if durationSeconds <= 0 {
		return Session{}, fmt.Errorf("%w: duration must be positive", apperrors.ErrInvalidInput)
	}
	for _, app := range apps {
		if strings.TrimSpace(app.Executable) == "" {
			return Session{}, fmt.Errorf("%w: app %q has no executable", apperrors.ErrInvalidInput, app.Label)
		}
	}
	return Session{
		Goal:         goal,
		Duration:     durationSeconds,
		Remaining:    durationSeconds,
		BlockedSites: append([]string(nil), sites...),
		BlockedApps:  append([]AppTarget(nil), apps...),
	}, nil
}

func (s Session) Elapsed() int {
	return s.Duration - s.Remaining
}

func (s Session) clone() Session {
	s.BlockedSites = append([]string(nil), s.BlockedSites...)
	s.BlockedApps = append([]AppTarget(nil), s.BlockedApps...)
	return s
}

// Countdown is the session state machine. Ending is terminal for a session:
// it is left only by Begin (a new session) or Reset.
type Countdown struct {
	phase   Phase
	session Session
}

func (c *Countdown) Phase() Phase {
	return c.phase
}

func (c *Countdown) Session() Session {
	return c.session.clone()
}

func (c *Countdown) Begin(session Session) error {
	if c.phase == PhaseRunning {
		return apperrors.ErrSessionRunning
	}
	if session.Duration <= 0 || session.Remaining != session.Duration {
		return fmt.Errorf("%w: session must start with full remaining time", apperrors.ErrInvalidInput)
	}
	c.session = session.clone()
	c.phase = PhaseRunning
	return nil
}

// Tick decrements the remaining time and reports whether this tick ended
// the session. It is a no-op outside Running.
func (c *Countdown) Tick() bool {
	if c.phase != PhaseRunning {
		return false
	}
	if c.session.Remaining > 0 {
		c.session.Remaining--
	}
	if c.session.Remaining == 0 {
		c.phase = PhaseEnding
		return true
	}
	return false
}

// Abort leaves Running without entering Ending.
func (c *Countdown) Abort() bool {
	if c.phase != PhaseRunning {
		return false
	}
	c.phase = PhaseIdle
	c.session = Session{}
	return true
}

func (c *Countdown) Reset() error {
	if c.phase == PhaseRunning {
		return apperrors.ErrSessionRunning
	}
	c.phase = PhaseIdle
	c.session = Session{}
	return nil
}
