package in_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus/internal/modules/blocker/adapter/in"
	blockerdto "focus/internal/modules/blocker/dto"
	"focus/internal/platform/backendrpc"
)

type fakeUsecase struct {
	created  blockerdto.CreateSessionInput
	err      error
	shutdown bool
}

func (f *fakeUsecase) CreateAndStoreSession(_ context.Context, input blockerdto.CreateSessionInput) (blockerdto.Ack, error) {
	f.created = input
	if f.err != nil {
		return blockerdto.Ack{}, f.err
	}
	return blockerdto.Ack{Message: "Session created successfully: s-1"}, nil
}

func (f *fakeUsecase) UnblockAllSites(context.Context) (blockerdto.Ack, error) {
	return blockerdto.Ack{Message: "Sites unblocked successfully"}, f.err
}

func (f *fakeUsecase) GetAllSessions(context.Context) ([]blockerdto.SessionRecord, error) {
	return []blockerdto.SessionRecord{{
		ID:          "s-1",
		Goal:        "Write docs",
		Duration:    900,
		BlockedApps: []blockerdto.AppTarget{{Label: "Steam", Executable: "steam"}},
		Timestamp:   time.Unix(1700000000, 0),
	}}, nil
}

func (f *fakeUsecase) SearchApps(_ context.Context, query string) ([]blockerdto.InstalledApp, error) {
	return []blockerdto.InstalledApp{{Name: "Steam", Executable: query}}, nil
}

func (f *fakeUsecase) AuthorizeAdmin(context.Context) (blockerdto.Ack, error) {
	return blockerdto.Ack{Message: "Already authorized"}, nil
}

func (f *fakeUsecase) SetupPersistentAuthorization(context.Context) (blockerdto.Ack, error) {
	return blockerdto.Ack{}, errors.New("sudoers rule rejected")
}

func (f *fakeUsecase) Shutdown(context.Context) error {
	f.shutdown = true
	return nil
}

func TestRPCServerMapsRequests(t *testing.T) {
	t.Parallel()
	uc := &fakeUsecase{}
	server := in.NewRPCServer(uc)
	ctx := context.Background()

	ack, err := server.CreateAndStoreSession(ctx, &backendrpc.CreateSessionRequest{
		Goal:            "Write docs",
		DurationSeconds: 900,
		BlockedSites:    []string{"reddit.com"},
		BlockedApps:     []backendrpc.AppTarget{{Label: "Steam", Executable: "steam"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Session created successfully: s-1", ack.Message)
	assert.Equal(t, 900, uc.created.DurationSeconds)
	assert.Equal(t, "steam", uc.created.BlockedApps[0].Executable)

	list, err := server.GetAllSessions(ctx, &backendrpc.Empty{})
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, int64(1700000000), list.Sessions[0].Timestamp)
	assert.Equal(t, int64(900), list.Sessions[0].DurationSeconds)

	apps, err := server.SearchApps(ctx, &backendrpc.SearchAppsRequest{Query: "steam"})
	require.NoError(t, err)
	assert.Equal(t, "steam", apps.Apps[0].Executable)

	ack, err = server.AuthorizeAdmin(ctx, &backendrpc.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "Already authorized", ack.Message)

	_, err = server.SetupPersistentAuthorization(ctx, &backendrpc.Empty{})
	assert.EqualError(t, err, "sudoers rule rejected")

	require.NoError(t, server.Shutdown(time.Second))
	assert.True(t, uc.shutdown)
}

func TestRPCServerPropagatesErrors(t *testing.T) {
	t.Parallel()
	uc := &fakeUsecase{err: errors.New("failed to block sites: permission denied")}
	server := in.NewRPCServer(uc)
	_, err := server.CreateAndStoreSession(context.Background(), &backendrpc.CreateSessionRequest{Goal: "g", DurationSeconds: 1})
	assert.EqualError(t, err, "failed to block sites: permission denied")
	_, err = server.UnblockAllSites(context.Background(), &backendrpc.Empty{})
	assert.Error(t, err)
}
