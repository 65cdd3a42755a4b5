package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"focus/internal/modules/blocker/domain"
	blockerdto "focus/internal/modules/blocker/dto"
	blockerin "focus/internal/modules/blocker/port/in"
	blockerout "focus/internal/modules/blocker/port/out"
	"focus/internal/modules/blocker/service"
	apperrors "focus/internal/platform/errors"
)

// Interactor serialises blocking commands; the hosts file and the app
// enforcer are process-wide resources.
type Interactor struct {
	mu       sync.Mutex
	hosts    *service.HostsService
	records  *service.RecordService
	search   *service.SearchService
	auth     *service.AuthService
	enforcer blockerout.AppEnforcer
	logger   hclog.Logger
}

func NewInteractor(hosts *service.HostsService, records *service.RecordService, search *service.SearchService, auth *service.AuthService, enforcer blockerout.AppEnforcer, logger hclog.Logger) blockerin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Interactor{hosts: hosts, records: records, search: search, auth: auth, enforcer: enforcer, logger: logger}
}

func (i *Interactor) CreateAndStoreSession(ctx context.Context, input blockerdto.CreateSessionInput) (blockerdto.Ack, error) {
	if strings.TrimSpace(input.Goal) == "" {
		return blockerdto.Ack{}, fmt.Errorf("%w: goal is required", apperrors.ErrInvalidInput)
	}
	if input.DurationSeconds <= 0 {
		return blockerdto.Ack{}, fmt.Errorf("%w: duration must be positive", apperrors.ErrInvalidInput)
	}
	apps := fromTargets(input.BlockedApps)

	i.mu.Lock()
	defer i.mu.Unlock()

	if len(input.BlockedSites) > 0 {
		if _, err := i.hosts.Block(ctx, input.BlockedSites); err != nil {
			return blockerdto.Ack{}, fmt.Errorf("failed to block sites: %w", err)
		}
	}
	if len(apps) > 0 {
		if i.enforcer == nil {
			i.rollback(ctx)
			return blockerdto.Ack{}, fmt.Errorf("failed to block apps: app blocking is not available")
		}
		if err := i.enforcer.Start(ctx, apps); err != nil {
			i.rollback(ctx)
			return blockerdto.Ack{}, fmt.Errorf("failed to block apps: %w", err)
		}
	}
	record, path, err := i.records.Store(ctx, strings.TrimSpace(input.Goal), input.DurationSeconds, input.BlockedSites, apps)
	if err != nil {
		i.rollback(ctx)
		return blockerdto.Ack{}, fmt.Errorf("failed to store session: %w", err)
	}
	i.logger.Info("session stored", "id", record.ID, "sites", len(record.BlockedSites), "apps", len(record.BlockedApps), "journal", path)
	return blockerdto.Ack{Message: "Session created successfully: " + record.ID}, nil
}

func (i *Interactor) UnblockAllSites(ctx context.Context) (blockerdto.Ack, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.release(ctx); err != nil {
		return blockerdto.Ack{}, fmt.Errorf("failed to unblock sites: %w", err)
	}
	return blockerdto.Ack{Message: "Sites unblocked successfully"}, nil
}

func (i *Interactor) GetAllSessions(ctx context.Context) ([]blockerdto.SessionRecord, error) {
	records, err := i.records.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]blockerdto.SessionRecord, 0, len(records))
	for _, r := range records {
		out = append(out, blockerdto.SessionRecord{
			ID:           r.ID,
			Goal:         r.Goal,
			Duration:     r.Duration,
			BlockedSites: r.BlockedSites,
			BlockedApps:  toTargets(r.BlockedApps),
			Timestamp:    r.Timestamp,
		})
	}
	return out, nil
}

func (i *Interactor) SearchApps(ctx context.Context, query string) ([]blockerdto.InstalledApp, error) {
	apps, err := i.search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search apps: %w", err)
	}
	out := make([]blockerdto.InstalledApp, 0, len(apps))
	for _, a := range apps {
		out = append(out, blockerdto.InstalledApp{
			Name:        a.Name,
			DisplayName: a.DisplayName,
			Executable:  a.Executable,
			Icon:        a.Icon,
			Categories:  a.Categories,
		})
	}
	return out, nil
}

func (i *Interactor) AuthorizeAdmin(ctx context.Context) (blockerdto.Ack, error) {
	cached, err := i.auth.Authorize(ctx)
	if err != nil {
		return blockerdto.Ack{}, err
	}
	if cached {
		return blockerdto.Ack{Message: "Already authorized"}, nil
	}
	return blockerdto.Ack{Message: "Authorization granted"}, nil
}

func (i *Interactor) SetupPersistentAuthorization(ctx context.Context) (blockerdto.Ack, error) {
	if err := i.auth.InstallPersistent(ctx); err != nil {
		return blockerdto.Ack{}, err
	}
	return blockerdto.Ack{Message: "Persistent authorization installed"}, nil
}

// Shutdown stops app enforcement. Hosts entries are left to the client,
// which releases them when it stops a running session.
func (i *Interactor) Shutdown(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.enforcer == nil {
		return nil
	}
	_, err := i.enforcer.Stop(ctx)
	return err
}

func (i *Interactor) release(ctx context.Context) error {
	var errs []error
	if i.enforcer != nil {
		attempts, err := i.enforcer.Stop(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("stop app blocker: %w", err))
		}
		for app, count := range attempts {
			i.logger.Info("blocked app launches", "app", app, "attempts", count)
		}
	}
	if _, err := i.hosts.Unblock(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (i *Interactor) rollback(ctx context.Context) {
	if err := i.release(ctx); err != nil {
		i.logger.Error("rollback of partial block failed", "error", err)
	}
}

func fromTargets(targets []blockerdto.AppTarget) []domain.AppTarget {
	out := make([]domain.AppTarget, 0, len(targets))
	for _, t := range targets {
		out = append(out, domain.AppTarget{Label: t.Label, Executable: t.Executable, Icon: t.Icon})
	}
	return out
}

func toTargets(targets []domain.AppTarget) []blockerdto.AppTarget {
	out := make([]blockerdto.AppTarget, 0, len(targets))
	for _, t := range targets {
		out = append(out, blockerdto.AppTarget{Label: t.Label, Executable: t.Executable, Icon: t.Icon})
	}
	return out
}
