package out_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus/internal/modules/blocker/adapter/out"
)

func TestSudoAuthorizerCheck(t *testing.T) {
	t.Parallel()
	runner := newScriptedRunner()
	auth := out.NewSudoAuthorizer(runner, "/etc/sudoers.d/focus", nil)
	assert.True(t, auth.Check(context.Background()))

	runner.fail["sudo -n true"] = 1
	assert.False(t, auth.Check(context.Background()))
}

func TestSudoAuthorizerAuthenticateOnTerminal(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	runner := newScriptedRunner()
	auth := out.NewSudoAuthorizer(runner, "/etc/sudoers.d/focus", nil)
	require.NoError(t, auth.Authenticate(context.Background()))
	require.Len(t, runner.interactive, 1)
	assert.Equal(t, "sudo -v", runner.interactive[0].String())
}

func TestSudoAuthorizerAuthenticatePrefersPkexec(t *testing.T) {
	t.Setenv("DISPLAY", ":0")
	runner := newScriptedRunner()
	auth := out.NewSudoAuthorizer(runner, "/etc/sudoers.d/focus", nil)
	require.NoError(t, auth.Authenticate(context.Background()))
	assert.Equal(t, []string{"pkexec sudo -v"}, runner.commandLines())
	assert.Empty(t, runner.interactive)
}

func TestSudoAuthorizerInstallRuleValidatesFirst(t *testing.T) {
	t.Parallel()
	runner := newScriptedRunner()
	auth := out.NewSudoAuthorizer(runner, "/etc/sudoers.d/focus", nil)
	require.NoError(t, auth.InstallRule(context.Background(), "alice ALL=(root) NOPASSWD: /usr/bin/cp a b\n"))

	lines := runner.commandLines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "sudo -n visudo -cf ")
	assert.Contains(t, lines[1], "sudo -n install -m 0440 -o root -g root ")
	assert.Contains(t, lines[1], " /etc/sudoers.d/focus")
}

func TestSudoAuthorizerUserPrefersSudoUser(t *testing.T) {
	t.Setenv("SUDO_USER", "bob")
	auth := out.NewSudoAuthorizer(newScriptedRunner(), "/etc/sudoers.d/focus", nil)
	name, err := auth.User()
	require.NoError(t, err)
	assert.Equal(t, "bob", name)
}
