package domain_test

import (
	"errors"
	"testing"

	"focus/internal/modules/session/domain"
	apperrors "focus/internal/platform/errors"
)

func TestNewSessionValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		goal      string
		duration  int
		apps      []domain.AppTarget
		shouldErr bool
	}{
		{name: "valid", goal: "Write docs", duration: 60},
		{name: "blank goal", goal: "   \t", duration: 60, shouldErr: true},
		{name: "zero duration", goal: "Write docs", duration: 0, shouldErr: true},
		{name: "negative duration", goal: "Write docs", duration: -5, shouldErr: true},
		{name: "app without executable", goal: "Write docs", duration: 60, apps: []domain.AppTarget{{Label: "Steam"}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewSession(tc.goal, tc.duration, nil, tc.apps)
			if tc.shouldErr {
				if !errors.Is(err, apperrors.ErrInvalidInput) {
					t.Fatalf("expected invalid input, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewSessionTrimsGoalAndFillsRemaining(t *testing.T) {
	t.Parallel()
	s, err := domain.NewSession("  Write docs  ", 90, []string{"reddit.com"}, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.Goal != "Write docs" || s.Remaining != 90 || s.Duration != 90 {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestCountdownEndsExactlyOnce(t *testing.T) {
	t.Parallel()
	for _, duration := range []int{1, 2, 7, 60} {
		s, err := domain.NewSession("Write docs", duration, nil, nil)
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		c := domain.Countdown{}
		if err := c.Begin(s); err != nil {
			t.Fatalf("begin: %v", err)
		}
		ends := 0
		for i := 0; i < duration+5; i++ {
			if c.Tick() {
				ends++
			}
		}
		if ends != 1 {
			t.Fatalf("duration %d: expected one end, got %d", duration, ends)
		}
		if c.Phase() != domain.PhaseEnding {
			t.Fatalf("duration %d: expected ending phase, got %s", duration, c.Phase())
		}
		if got := c.Session().Remaining; got != 0 {
			t.Fatalf("duration %d: expected remaining 0, got %d", duration, got)
		}
	}
}

func TestCountdownTickIgnoredWhenIdle(t *testing.T) {
	t.Parallel()
	c := domain.Countdown{}
	if c.Tick() {
		t.Fatalf("idle tick must not end")
	}
	if c.Phase() != domain.PhaseIdle {
		t.Fatalf("expected idle, got %s", c.Phase())
	}
}

func TestCountdownBeginAndResetRules(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewSession("Write docs", 2, nil, nil)
	c := domain.Countdown{}
	if err := c.Begin(s); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := c.Begin(s); !errors.Is(err, apperrors.ErrSessionRunning) {
		t.Fatalf("expected running rejection, got %v", err)
	}
	if err := c.Reset(); !errors.Is(err, apperrors.ErrSessionRunning) {
		t.Fatalf("reset while running must fail, got %v", err)
	}
	c.Tick()
	c.Tick()
	if err := c.Begin(s); err != nil {
		t.Fatalf("begin from ending: %v", err)
	}
	if !c.Abort() {
		t.Fatalf("abort from running should succeed")
	}
	if c.Abort() {
		t.Fatalf("abort from idle should be a no-op")
	}
	if err := c.Reset(); err != nil {
		t.Fatalf("reset from idle: %v", err)
	}
	if c.Session().Goal != "" {
		t.Fatalf("reset must clear the session")
	}
}

func TestCountdownSessionIsACopy(t *testing.T) {
	t.Parallel()
	s, _ := domain.NewSession("Write docs", 5, []string{"reddit.com"}, nil)
	c := domain.Countdown{}
	_ = c.Begin(s)
	snapshot := c.Session()
	snapshot.BlockedSites[0] = "changed"
	if c.Session().BlockedSites[0] != "reddit.com" {
		t.Fatalf("countdown state leaked through snapshot")
	}
}
