package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus/internal/bootstrap"
	blockerdto "focus/internal/modules/blocker/dto"
	sessionoutadapter "focus/internal/modules/session/adapter/out"
	"focus/internal/platform/config"
)

const originalHosts = "127.0.0.1 localhost\n"

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults(dir)
	cfg.Blocking.HostsFile = filepath.Join(dir, "hosts")
	cfg.Blocking.Privileged = false
	cfg.Blocking.Notify = false
	cfg.Blocking.ProcRoot = filepath.Join(dir, "proc")
	cfg.Blocking.ApplicationDirs = []string{filepath.Join(dir, "applications")}
	require.NoError(t, os.MkdirAll(cfg.Blocking.ProcRoot, 0o755))
	require.NoError(t, os.MkdirAll(cfg.Blocking.ApplicationDirs[0], 0o755))
	require.NoError(t, os.WriteFile(cfg.Blocking.HostsFile, []byte(originalHosts), 0o644))
	desktop := "[Desktop Entry]\nType=Application\nName=Firefox\nExec=firefox %u\nCategories=Network;WebBrowser;\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Blocking.ApplicationDirs[0], "firefox.desktop"), []byte(desktop), 0o644))
	return cfg
}

func TestNewBlockerBlocksRecordsAndUnblocks(t *testing.T) {
	cfg := testConfig(t)
	blocker, err := bootstrap.NewBlocker(cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = blocker.Close() })
	ctx := context.Background()

	_, err = blocker.Usecase.CreateAndStoreSession(ctx, blockerdto.CreateSessionInput{
		Goal:            "Write docs",
		DurationSeconds: 1500,
		BlockedSites:    []string{"reddit.com"},
	})
	require.NoError(t, err)

	hosts, err := os.ReadFile(cfg.Blocking.HostsFile)
	require.NoError(t, err)
	assert.Contains(t, string(hosts), "reddit.com")

	records, err := blocker.Usecase.GetAllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Write docs", records[0].Goal)
	assert.Equal(t, 1500, records[0].Duration)

	_, err = blocker.Usecase.UnblockAllSites(ctx)
	require.NoError(t, err)
	hosts, err = os.ReadFile(cfg.Blocking.HostsFile)
	require.NoError(t, err)
	assert.Equal(t, originalHosts, string(hosts))
	require.NoError(t, blocker.Usecase.Shutdown(ctx))
}

func TestNewBlockerSearchesDesktopEntries(t *testing.T) {
	cfg := testConfig(t)
	blocker, err := bootstrap.NewBlocker(cfg, hclog.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = blocker.Close() })

	apps, err := blocker.Usecase.SearchApps(context.Background(), "fire")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "firefox", apps[0].Executable)
}

func TestNewWiresInProcessApp(t *testing.T) {
	cfg := testConfig(t)
	var out strings.Builder
	app, err := bootstrap.New(cfg, sessionoutadapter.NewConsoleSurface(&out), &out, hclog.NewNullLogger())
	require.NoError(t, err)
	ctx := context.Background()

	status, err := app.OnboardingCLI.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Onboarded)

	history, err := app.SessionCLI.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NotEmpty(t, app.SessionCLI.DurationOptions())

	require.NoError(t, app.Close())
}
