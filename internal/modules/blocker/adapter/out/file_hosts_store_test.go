package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus/internal/modules/blocker/adapter/out"
)

func TestFileHostsStoreDirectReadWrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hosts")
	store := out.NewFileHostsStore(out.HostsStoreOptions{Path: path})
	ctx := context.Background()

	content, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, content, "missing hosts file reads as empty")

	require.NoError(t, store.Write(ctx, "127.0.0.1 localhost\n"))
	content, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n", content)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	commands, err := store.Commands()
	require.NoError(t, err)
	assert.Empty(t, commands)
}

func TestFileHostsStorePrivilegedCopy(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts")
	stage := filepath.Join(dir, "stage", "hosts.new")
	runner := newScriptedRunner()
	var staged string
	runner.onRun = func(c call) {
		payload, err := os.ReadFile(stage)
		if err == nil {
			staged = string(payload)
		}
	}
	store := out.NewFileHostsStore(out.HostsStoreOptions{Path: hosts, StagePath: stage, Privileged: true, Runner: runner})

	require.NoError(t, store.Write(context.Background(), "127.0.0.1 x.com\n"))
	assert.Equal(t, []string{"sudo -n /usr/bin/cp " + stage + " " + hosts}, runner.commandLines())
	assert.Equal(t, "127.0.0.1 x.com\n", staged)
	_, err := os.Stat(stage)
	assert.True(t, os.IsNotExist(err), "stage file is removed after the copy")

	commands, err := store.Commands()
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/cp " + stage + " " + hosts}, commands)
}

func TestFileHostsStoreAuthenticatesOnceAndRetries(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts")
	stage := filepath.Join(dir, "hosts.new")
	cp := "sudo -n /usr/bin/cp " + stage + " " + hosts
	runner := newScriptedRunner()
	runner.fail[cp] = 1
	auth := &countingAuth{}
	store := out.NewFileHostsStore(out.HostsStoreOptions{Path: hosts, StagePath: stage, Privileged: true, Runner: runner, Auth: auth})

	require.NoError(t, store.Write(context.Background(), "x"))
	assert.Equal(t, 1, auth.calls)
	assert.Equal(t, []string{cp, cp}, runner.commandLines())
}

func TestFileHostsStoreGivesUpAfterOneRetry(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts")
	stage := filepath.Join(dir, "hosts.new")
	cp := "sudo -n /usr/bin/cp " + stage + " " + hosts
	runner := newScriptedRunner()
	runner.fail[cp] = 5
	auth := &countingAuth{}
	store := out.NewFileHostsStore(out.HostsStoreOptions{Path: hosts, StagePath: stage, Privileged: true, Runner: runner, Auth: auth})

	err := store.Write(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write hosts file")
	assert.Equal(t, 1, auth.calls)
	assert.Len(t, runner.commandLines(), 2)
}
