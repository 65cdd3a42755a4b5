package service

import (
	"context"
	"errors"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"focus/internal/modules/session/domain"
	"focus/internal/modules/session/dto"
	sessionout "focus/internal/modules/session/port/out"
)

// Terminator runs the end-of-session steps that follow cancelling the tick
// source: cue, summary, stats layout, unblock. Every step runs even when an
// earlier one failed; failures are logged and returned joined.
type Terminator struct {
	cue     sessionout.CuePlayer
	display sessionout.Display
	window  sessionout.Window
	backend sessionout.Backend
	logger  hclog.Logger
}

func NewTerminator(cue sessionout.CuePlayer, display sessionout.Display, window sessionout.Window, backend sessionout.Backend, logger hclog.Logger) *Terminator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Terminator{cue: cue, display: display, window: window, backend: backend, logger: logger}
}

func (t *Terminator) Run(ctx context.Context) error {
	var errs []error
	if t.cue != nil {
		if err := t.cue.Play(ctx); err != nil {
			t.logger.Warn("completion cue failed", "error", err)
			errs = append(errs, fmt.Errorf("play cue: %w", err))
		}
	}
	if t.display != nil {
		if err := t.display.ShowSummary(ctx); err != nil {
			t.logger.Error("show summary failed", "error", err)
			errs = append(errs, fmt.Errorf("show summary: %w", err))
		}
	}
	if t.window != nil {
		if err := t.window.Resize(ctx, domain.LayoutStats); err != nil {
			t.logger.Error("resize to stats failed", "error", err)
			errs = append(errs, fmt.Errorf("resize: %w", err))
		}
	}
	if t.backend != nil {
		if err := t.backend.UnblockAllSites(ctx); err != nil {
			t.logger.Error("unblock after session failed", "error", err)
			errs = append(errs, fmt.Errorf("unblock: %w", err))
		}
	}
	return errors.Join(errs...)
}

func ToSnapshot(phase domain.Phase, session domain.Session, starting bool) dto.Snapshot {
	return dto.Snapshot{
		Phase:        toPhase(phase),
		Starting:     starting,
		Goal:         session.Goal,
		Duration:     session.Duration,
		Remaining:    session.Remaining,
		BlockedSites: session.BlockedSites,
		BlockedApps:  toTargets(session.BlockedApps),
		Clock:        domain.FormatClock(session.Remaining),
		Progress:     domain.Progress(session),
	}
}

func ToHistory(entries []domain.HistoryEntry) []dto.HistoryEntry {
	out := make([]dto.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntry{
			ID:           e.ID,
			Goal:         e.Goal,
			Duration:     e.Duration,
			Span:         domain.FormatSpan(e.Duration),
			BlockedSites: e.BlockedSites,
			BlockedApps:  toTargets(e.BlockedApps),
			Timestamp:    e.Timestamp,
		})
	}
	return out
}

func ToInstalledApps(apps []domain.InstalledApp) []dto.InstalledApp {
	out := make([]dto.InstalledApp, 0, len(apps))
	for _, a := range apps {
		out = append(out, dto.InstalledApp{
			Name:        a.Name,
			DisplayName: a.DisplayName,
			Executable:  a.Executable,
			Icon:        a.Icon,
			Categories:  a.Categories,
		})
	}
	return out
}

func ToSites(sites []domain.Site) []dto.Site {
	out := make([]dto.Site, 0, len(sites))
	for _, s := range sites {
		out = append(out, dto.Site{Category: s.Category, Name: s.Name, URL: s.URL})
	}
	return out
}

func FromTargets(targets []dto.AppTarget) []domain.AppTarget {
	out := make([]domain.AppTarget, 0, len(targets))
	for _, t := range targets {
		out = append(out, domain.AppTarget{Label: t.Label, Executable: t.Executable, Icon: t.Icon})
	}
	return out
}

func toTargets(targets []domain.AppTarget) []dto.AppTarget {
	out := make([]dto.AppTarget, 0, len(targets))
	for _, t := range targets {
		out = append(out, dto.AppTarget{Label: t.Label, Executable: t.Executable, Icon: t.Icon})
	}
	return out
}

func toPhase(p domain.Phase) dto.Phase {
	switch p {
	case domain.PhaseRunning:
		return dto.PhaseRunning
	case domain.PhaseEnding:
		return dto.PhaseEnding
	default:
		return dto.PhaseIdle
	}
}
