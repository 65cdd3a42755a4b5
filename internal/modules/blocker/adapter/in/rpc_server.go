package in

import (
	"context"
	"time"

	blockerdto "focus/internal/modules/blocker/dto"
	blockerin "focus/internal/modules/blocker/port/in"
	"focus/internal/platform/backendrpc"
)

// RPCServer exposes the blocker usecase over the backend gRPC contract.
type RPCServer struct {
	usecase blockerin.Usecase
}

func NewRPCServer(usecase blockerin.Usecase) *RPCServer {
	return &RPCServer{usecase: usecase}
}

var _ backendrpc.BackendServer = (*RPCServer)(nil)

func (s *RPCServer) CreateAndStoreSession(ctx context.Context, in *backendrpc.CreateSessionRequest) (*backendrpc.Ack, error) {
	apps := make([]blockerdto.AppTarget, 0, len(in.BlockedApps))
	for _, app := range in.BlockedApps {
		apps = append(apps, blockerdto.AppTarget{Label: app.Label, Executable: app.Executable, Icon: app.Icon})
	}
	ack, err := s.usecase.CreateAndStoreSession(ctx, blockerdto.CreateSessionInput{
		Goal:            in.Goal,
		DurationSeconds: int(in.DurationSeconds),
		BlockedSites:    in.BlockedSites,
		BlockedApps:     apps,
	})
	if err != nil {
		return nil, err
	}
	return &backendrpc.Ack{Message: ack.Message}, nil
}

func (s *RPCServer) UnblockAllSites(ctx context.Context, _ *backendrpc.Empty) (*backendrpc.Ack, error) {
	return ack(s.usecase.UnblockAllSites(ctx))
}

func (s *RPCServer) GetAllSessions(ctx context.Context, _ *backendrpc.Empty) (*backendrpc.SessionList, error) {
	records, err := s.usecase.GetAllSessions(ctx)
	if err != nil {
		return nil, err
	}
	out := &backendrpc.SessionList{Sessions: make([]backendrpc.SessionRecord, 0, len(records))}
	for _, r := range records {
		apps := make([]backendrpc.AppTarget, 0, len(r.BlockedApps))
		for _, app := range r.BlockedApps {
			apps = append(apps, backendrpc.AppTarget{Label: app.Label, Executable: app.Executable, Icon: app.Icon})
		}
		out.Sessions = append(out.Sessions, backendrpc.SessionRecord{
			ID:              r.ID,
			Goal:            r.Goal,
			DurationSeconds: int64(r.Duration),
			BlockedSites:    r.BlockedSites,
			BlockedApps:     apps,
			Timestamp:       r.Timestamp.Unix(),
		})
	}
	return out, nil
}

func (s *RPCServer) SearchApps(ctx context.Context, in *backendrpc.SearchAppsRequest) (*backendrpc.AppList, error) {
	apps, err := s.usecase.SearchApps(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	out := &backendrpc.AppList{Apps: make([]backendrpc.InstalledApp, 0, len(apps))}
	for _, a := range apps {
		out.Apps = append(out.Apps, backendrpc.InstalledApp{
			Name:        a.Name,
			DisplayName: a.DisplayName,
			Executable:  a.Executable,
			Icon:        a.Icon,
			Categories:  a.Categories,
		})
	}
	return out, nil
}

func (s *RPCServer) AuthorizeAdmin(ctx context.Context, _ *backendrpc.Empty) (*backendrpc.Ack, error) {
	return ack(s.usecase.AuthorizeAdmin(ctx))
}

func (s *RPCServer) SetupPersistentAuthorization(ctx context.Context, _ *backendrpc.Empty) (*backendrpc.Ack, error) {
	return ack(s.usecase.SetupPersistentAuthorization(ctx))
}

// Shutdown is called by the plugin process on exit.
func (s *RPCServer) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.usecase.Shutdown(ctx)
}

func ack(out blockerdto.Ack, err error) (*backendrpc.Ack, error) {
	if err != nil {
		return nil, err
	}
	return &backendrpc.Ack{Message: out.Message}, nil
}
