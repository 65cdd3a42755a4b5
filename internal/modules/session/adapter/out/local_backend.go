package out

import (
	"context"

	blockerdto "focus/internal/modules/blocker/dto"
	blockerin "focus/internal/modules/blocker/port/in"
	"focus/internal/modules/session/domain"
	sessionout "focus/internal/modules/session/port/out"
)

// LocalBackend calls the blocker usecase in the same process.
type LocalBackend struct {
	usecase blockerin.Usecase
}

func NewLocalBackend(usecase blockerin.Usecase) *LocalBackend {
	return &LocalBackend{usecase: usecase}
}

var _ sessionout.Backend = (*LocalBackend)(nil)

func (b *LocalBackend) CreateAndStoreSession(ctx context.Context, session domain.Session) error {
	apps := make([]blockerdto.AppTarget, 0, len(session.BlockedApps))
	for _, app := range session.BlockedApps {
		apps = append(apps, blockerdto.AppTarget{Label: app.Label, Executable: app.Executable, Icon: app.Icon})
	}
	_, err := b.usecase.CreateAndStoreSession(ctx, blockerdto.CreateSessionInput{
		Goal:            session.Goal,
		DurationSeconds: session.Duration,
		BlockedSites:    session.BlockedSites,
		BlockedApps:     apps,
	})
	return err
}

func (b *LocalBackend) UnblockAllSites(ctx context.Context) error {
	_, err := b.usecase.UnblockAllSites(ctx)
	return err
}

func (b *LocalBackend) GetAllSessions(ctx context.Context) ([]domain.HistoryEntry, error) {
	records, err := b.usecase.GetAllSessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HistoryEntry, 0, len(records))
	for _, r := range records {
		apps := make([]domain.AppTarget, 0, len(r.BlockedApps))
		for _, app := range r.BlockedApps {
			apps = append(apps, domain.AppTarget{Label: app.Label, Executable: app.Executable, Icon: app.Icon})
		}
		out = append(out, domain.HistoryEntry{
			ID:           r.ID,
			Goal:         r.Goal,
			Duration:     r.Duration,
			BlockedSites: r.BlockedSites,
			BlockedApps:  apps,
			Timestamp:    r.Timestamp,
		})
	}
	return out, nil
}

func (b *LocalBackend) SearchApps(ctx context.Context, query string) ([]domain.InstalledApp, error) {
	apps, err := b.usecase.SearchApps(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InstalledApp, 0, len(apps))
	for _, a := range apps {
		out = append(out, domain.InstalledApp{
			Name:        a.Name,
			DisplayName: a.DisplayName,
			Executable:  a.Executable,
			Icon:        a.Icon,
			Categories:  a.Categories,
		})
	}
	return out, nil
}

func (b *LocalBackend) AuthorizeAdmin(ctx context.Context) (string, error) {
	ack, err := b.usecase.AuthorizeAdmin(ctx)
	return ack.Message, err
}

func (b *LocalBackend) SetupPersistentAuthorization(ctx context.Context) (string, error) {
	ack, err := b.usecase.SetupPersistentAuthorization(ctx)
	return ack.Message, err
}

func (b *LocalBackend) Close() error {
	return b.usecase.Shutdown(context.Background())
}
