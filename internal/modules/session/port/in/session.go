package in

import (
	"context"

	"focus/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.Snapshot, error)
	Tick()
	Stop(ctx context.Context) error
	Reset(ctx context.Context) error
	Unblock(ctx context.Context) error
	Shutdown(ctx context.Context)
	Snapshot() dto.Snapshot
	Wait(ctx context.Context) (dto.Snapshot, error)
	History(ctx context.Context) ([]dto.HistoryEntry, error)
	SearchApps(ctx context.Context, query string) ([]dto.InstalledApp, error)
	SuggestSites(query string) []dto.Site
	DurationOptions() []dto.DurationOption
}
