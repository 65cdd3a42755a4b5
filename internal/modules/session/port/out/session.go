package out

import (
	"context"
	"time"

	"focus/internal/modules/session/domain"
	"focus/internal/modules/session/dto"
)

// Backend is the command boundary to the blocking backend.
type Backend interface {
	CreateAndStoreSession(ctx context.Context, session domain.Session) error
	UnblockAllSites(ctx context.Context) error
	GetAllSessions(ctx context.Context) ([]domain.HistoryEntry, error)
	SearchApps(ctx context.Context, query string) ([]domain.InstalledApp, error)
}

type Window interface {
	Resize(ctx context.Context, layout domain.Layout) error
}

type Display interface {
	Render(snapshot dto.Snapshot)
	ShowSummary(ctx context.Context) error
}

// CuePlayer starts the completion cue and returns without waiting for it.
type CuePlayer interface {
	Play(ctx context.Context) error
}

type TickSource interface {
	Arm(interval time.Duration, fn func())
	Stop()
}
