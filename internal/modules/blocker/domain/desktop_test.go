package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus/internal/modules/blocker/domain"
)

const firefoxEntry = `[Desktop Entry]
Name=Firefox
Name[de]=Firefox Webbrowser
Exec=/usr/lib/firefox/firefox %u
Icon=firefox
Categories=Network;WebBrowser;

[Desktop Action new-private-window]
Name=New Private Window
Exec=/usr/lib/firefox/firefox --private-window %u
`

func TestParseDesktopEntry(t *testing.T) {
	t.Parallel()
	app, ok := domain.ParseDesktopEntry(firefoxEntry)
	require.True(t, ok)
	assert.Equal(t, "Firefox", app.Name)
	assert.Equal(t, "firefox", app.Executable)
	assert.Equal(t, "firefox", app.Icon)
	assert.Equal(t, []string{"Network", "WebBrowser"}, app.Categories)
}

func TestParseDesktopEntryRejects(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"no display": "[Desktop Entry]\nName=Helper\nExec=helper\nNoDisplay=true\n",
		"hidden":     "[Desktop Entry]\nName=Helper\nExec=helper\nHidden=true\n",
		"no exec":    "[Desktop Entry]\nName=Helper\n",
		"no name":    "[Desktop Entry]\nExec=helper\n",
	}
	for name, content := range cases {
		_, ok := domain.ParseDesktopEntry(content)
		assert.False(t, ok, name)
	}
}

func TestExecutable(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "steam", domain.Executable(`"/usr/games/steam" %U`))
	assert.Equal(t, "code", domain.Executable("code --new-window"))
	assert.Equal(t, "", domain.Executable("   "))
}

func TestMatchAndRankApps(t *testing.T) {
	t.Parallel()
	apps := []domain.InstalledApp{
		{Name: "Steam Link", Executable: "steamlink"},
		{Name: "Steam", Executable: "steam", Categories: []string{"Game"}},
		{Name: "Steam", Executable: "steam-dup"},
		{Name: "Chess", Executable: "gnome-chess", Categories: []string{"Game"}},
	}
	matched := []domain.InstalledApp{}
	for _, app := range apps {
		if domain.MatchApp(app, "STEAM") {
			matched = append(matched, app)
		}
	}
	ranked := domain.RankApps(matched, "steam")
	require.Len(t, ranked, 2)
	assert.Equal(t, "Steam", ranked[0].Name)
	assert.Equal(t, "steam", ranked[0].Executable)
	assert.Equal(t, "Steam Link", ranked[1].Name)

	assert.True(t, domain.MatchApp(apps[3], "game"))
	assert.False(t, domain.MatchApp(apps[3], " "))
}

func TestRankAppsTruncates(t *testing.T) {
	t.Parallel()
	apps := []domain.InstalledApp{}
	for i := 0; i < 15; i++ {
		apps = append(apps, domain.InstalledApp{Name: fmt.Sprintf("App %02d", i)})
	}
	ranked := domain.RankApps(apps, "app")
	require.Len(t, ranked, domain.MaxSearchResults)
	assert.Equal(t, "App 00", ranked[0].Name)
}

func TestMatchesProcess(t *testing.T) {
	t.Parallel()
	p := domain.ProcessInfo{PID: 42, Comm: "Discord\n", Cmdline: "/opt/discord/Discord --type=renderer", Exe: "/opt/discord/Discord"}
	assert.True(t, domain.MatchesProcess(p, "discord"))
	assert.False(t, domain.MatchesProcess(p, "steam"))
	assert.False(t, domain.MatchesProcess(p, ""))
	assert.True(t, domain.MatchesProcess(domain.ProcessInfo{Exe: "/usr/bin/steam"}, "Steam"))
}

func TestSudoersRule(t *testing.T) {
	t.Parallel()
	rule, err := domain.SudoersRule("alice", []string{"/usr/bin/cp /tmp/focus-hosts /etc/hosts", "/usr/bin/resolvectl flush-caches"})
	require.NoError(t, err)
	assert.Contains(t, rule, "alice ALL=(root) NOPASSWD: /usr/bin/cp /tmp/focus-hosts /etc/hosts, /usr/bin/resolvectl flush-caches\n")

	_, err = domain.SudoersRule("root ALL", []string{"/bin/true"})
	assert.Error(t, err)
	_, err = domain.SudoersRule("alice", []string{"cp"})
	assert.Error(t, err)
	_, err = domain.SudoersRule("alice", nil)
	assert.Error(t, err)
}

func TestRecordValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, domain.Record{ID: "a", Goal: "g", Duration: 60}.Validate())
	assert.Error(t, domain.Record{Goal: "g", Duration: 60}.Validate())
	assert.Error(t, domain.Record{ID: "a", Goal: " ", Duration: 60}.Validate())
	assert.Error(t, domain.Record{ID: "a", Goal: "g"}.Validate())
}
