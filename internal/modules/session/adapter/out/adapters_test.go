package out_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blockerdto "focus/internal/modules/blocker/dto"
	"focus/internal/modules/session/adapter/out"
	"focus/internal/modules/session/domain"
	"focus/internal/modules/session/dto"
	"focus/internal/platform/backendrpc"
)

type fakeBlocker struct {
	created  blockerdto.CreateSessionInput
	unblocks int
	shutdown bool
}

func (f *fakeBlocker) CreateAndStoreSession(_ context.Context, input blockerdto.CreateSessionInput) (blockerdto.Ack, error) {
	f.created = input
	return blockerdto.Ack{Message: "Session created successfully: s-1"}, nil
}

func (f *fakeBlocker) UnblockAllSites(context.Context) (blockerdto.Ack, error) {
	f.unblocks++
	return blockerdto.Ack{Message: "Sites unblocked successfully"}, nil
}

func (f *fakeBlocker) GetAllSessions(context.Context) ([]blockerdto.SessionRecord, error) {
	return []blockerdto.SessionRecord{{ID: "s-1", Goal: "Read", Duration: 600, BlockedApps: []blockerdto.AppTarget{{Label: "Steam", Executable: "steam"}}}}, nil
}

func (f *fakeBlocker) SearchApps(_ context.Context, query string) ([]blockerdto.InstalledApp, error) {
	return []blockerdto.InstalledApp{{Name: "Steam", Executable: query, Categories: []string{"Game"}}}, nil
}

func (f *fakeBlocker) AuthorizeAdmin(context.Context) (blockerdto.Ack, error) {
	return blockerdto.Ack{Message: "Authorization granted"}, nil
}

func (f *fakeBlocker) SetupPersistentAuthorization(context.Context) (blockerdto.Ack, error) {
	return blockerdto.Ack{}, errors.New("visudo rejected rule")
}

func (f *fakeBlocker) Shutdown(context.Context) error {
	f.shutdown = true
	return nil
}

func TestLocalBackendTranslates(t *testing.T) {
	t.Parallel()
	blocker := &fakeBlocker{}
	backend := out.NewLocalBackend(blocker)
	ctx := context.Background()

	require.NoError(t, backend.CreateAndStoreSession(ctx, domain.Session{
		Goal:         "Write docs",
		Duration:     900,
		Remaining:    900,
		BlockedSites: []string{"reddit.com"},
		BlockedApps:  []domain.AppTarget{{Label: "Steam", Executable: "steam"}},
	}))
	assert.Equal(t, 900, blocker.created.DurationSeconds)
	assert.Equal(t, []blockerdto.AppTarget{{Label: "Steam", Executable: "steam"}}, blocker.created.BlockedApps)

	require.NoError(t, backend.UnblockAllSites(ctx))
	assert.Equal(t, 1, blocker.unblocks)

	history, err := backend.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "steam", history[0].BlockedApps[0].Executable)

	apps, err := backend.SearchApps(ctx, "steam")
	require.NoError(t, err)
	assert.Equal(t, []string{"Game"}, apps[0].Categories)

	msg, err := backend.AuthorizeAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Authorization granted", msg)
	_, err = backend.SetupPersistentAuthorization(ctx)
	assert.EqualError(t, err, "visudo rejected rule")

	require.NoError(t, backend.Close())
	assert.True(t, blocker.shutdown)
}

func TestFromSessionListConvertsUnixSeconds(t *testing.T) {
	t.Parallel()
	entries := out.FromSessionList(&backendrpc.SessionList{Sessions: []backendrpc.SessionRecord{{
		ID:              "s-1",
		Goal:            "Read",
		DurationSeconds: 1800,
		BlockedApps:     []backendrpc.AppTarget{{Label: "Steam", Executable: "steam"}},
		Timestamp:       1700000000,
	}}})
	require.Len(t, entries, 1)
	assert.Equal(t, 1800, entries[0].Duration)
	assert.True(t, entries[0].Timestamp.Equal(time.Unix(1700000000, 0)))
	assert.Equal(t, "Steam", entries[0].BlockedApps[0].Label)
}

func TestPluginBackendRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	binary := filepath.Join(t.TempDir(), "focus-backend")
	require.NoError(t, os.WriteFile(binary, []byte("not the backend"), 0o755))
	_, err := out.NewPluginBackend(out.PluginOptions{Binary: binary, SHA256: "00"})
	assert.ErrorIs(t, err, out.ErrChecksumMismatch)
}

func TestCommandCueFallsBackToBell(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, out.NewCommandCue(nil, &buf, nil).Play(context.Background()))
	assert.Equal(t, "\a", buf.String())

	buf.Reset()
	err := out.NewCommandCue([]string{filepath.Join(t.TempDir(), "missing-player")}, &buf, nil).Play(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "\a", buf.String())
}

func TestConsoleSurfacePrintsMilestones(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	surface := out.NewConsoleSurface(&buf)
	surface.Render(dto.Snapshot{Phase: dto.PhaseIdle, Starting: true, Goal: "Read"})
	surface.Render(dto.Snapshot{Phase: dto.PhaseRunning, Goal: "Read", Duration: 120, Remaining: 120, Clock: "02:00"})
	surface.Render(dto.Snapshot{Phase: dto.PhaseRunning, Goal: "Read", Duration: 120, Remaining: 119, Clock: "01:59"})
	surface.Render(dto.Snapshot{Phase: dto.PhaseRunning, Goal: "Read", Duration: 120, Remaining: 60, Clock: "01:00"})
	surface.Render(dto.Snapshot{Phase: dto.PhaseEnding, Goal: "Read", Duration: 120, Remaining: 0, Clock: "00:00"})
	require.NoError(t, surface.ShowSummary(context.Background()))
	require.NoError(t, surface.Resize(context.Background(), domain.LayoutStats))

	assert.Equal(t, "Starting \"Read\"...\nFocusing on \"Read\" for 2m\n01:00 remaining\nSession complete: Read (2m)\n", buf.String())
	assert.Equal(t, domain.LayoutStats, surface.Layout())
}
