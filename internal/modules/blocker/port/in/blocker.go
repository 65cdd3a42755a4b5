package in

import (
	"context"

	"focus/internal/modules/blocker/dto"
)

type Usecase interface {
	CreateAndStoreSession(ctx context.Context, input dto.CreateSessionInput) (dto.Ack, error)
	UnblockAllSites(ctx context.Context) (dto.Ack, error)
	GetAllSessions(ctx context.Context) ([]dto.SessionRecord, error)
	SearchApps(ctx context.Context, query string) ([]dto.InstalledApp, error)
	AuthorizeAdmin(ctx context.Context) (dto.Ack, error)
	SetupPersistentAuthorization(ctx context.Context) (dto.Ack, error)
	Shutdown(ctx context.Context) error
}
