package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	onboardingdto "focus/internal/modules/onboarding/dto"
	"focus/internal/modules/session/domain"
	sessiondto "focus/internal/modules/session/dto"
	"focus/internal/ui/components"
	"focus/internal/ui/theme"
	focusview "focus/internal/ui/views/focus"
	onboardingview "focus/internal/ui/views/onboarding"
	statsview "focus/internal/ui/views/stats"
	widgetview "focus/internal/ui/views/widget"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.Snapshot, error)
	Stop(ctx context.Context) error
	Reset(ctx context.Context) error
	Unblock(ctx context.Context) error
	History(ctx context.Context) ([]sessiondto.HistoryEntry, error)
	SearchApps(ctx context.Context, query string) ([]sessiondto.InstalledApp, error)
	SuggestSites(query string) []sessiondto.Site
	DurationOptions() []sessiondto.DurationOption
}

type onboardingPort interface {
	Next(ctx context.Context) (onboardingdto.Status, error)
	Prev(ctx context.Context) (onboardingdto.Status, error)
	CompleteAuthorization(ctx context.Context) (onboardingdto.Status, error)
	RequestPermission(ctx context.Context) (onboardingdto.PermissionResult, error)
	Skip(ctx context.Context) (onboardingdto.Status, error)
	Reset(ctx context.Context) (onboardingdto.Status, error)
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screenID int

const (
	screenOnboarding screenID = iota
	screenMain
	screenWidget
	screenStats
)

// ─── async messages ──────────────────────────────────────────────────────────

type sessionStartedMsg struct{ err error }

type resetDoneMsg struct{ err error }

// actionDoneMsg reports a fire-and-forget command from the palette.
type actionDoneMsg struct {
	ok  string
	err error
}

type onboardingResetMsg struct {
	status onboardingdto.Status
	err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Help    key.Binding
	Palette key.Binding
	Stop    key.Binding
	New     key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":", "ctrl+p"), key.WithHelp(":/ctrl+p", "palette")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop session")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Stop, k.New},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes between the onboarding,
// form, widget and stats screens. LayoutMsg selects the form and widget
// screens; the stats screen is shown by SummaryMsg.
type Model struct {
	session    sessionPort
	onboarding onboardingPort

	onboardView onboardingview.Model
	focusView   focusview.Model
	widgetView  widgetview.Model
	statsView   statsview.Model

	screen   screenID
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	snapshot sessiondto.Snapshot
	status   string
	layout   domain.Layout
	width    int
	height   int
}

func NewModel(session sessionPort, onboarding onboardingPort, initial onboardingdto.Status) Model {
	screen := screenMain
	if !initial.Onboarded {
		screen = screenOnboarding
	}
	h := help.New()
	h.ShowAll = true
	return Model{
		session:     session,
		onboarding:  onboarding,
		onboardView: onboardingview.New(onboarding, initial),
		focusView:   focusview.New(session),
		widgetView:  widgetview.New(),
		statsView:   statsview.New(session),
		screen:      screen,
		keys:        defaultKeys(),
		help:        h,
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.focusView.Init()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		if msg.Snapshot.Starting {
			m.status = "starting session…"
		}
		return m, m.widgetView.SetSnapshot(msg.Snapshot)

	case LayoutMsg:
		return m.applyLayout(msg.Layout)

	case SummaryMsg:
		m.status = "session complete: " + m.snapshot.Goal
		m.screen = screenStats
		return m, m.statsView.Load()

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "session start failed"
			m.focusView.SetStatus(msg.err.Error(), true)
			return m, nil
		}
		m.status = "session started: " + m.snapshot.Goal
		return m, nil

	case resetDoneMsg:
		if msg.err != nil {
			m.status = "new session: " + msg.err.Error()
			return m, nil
		}
		return m, m.focusView.Clear()

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.ok
		}
		return m, nil

	case onboardingResetMsg:
		if msg.err != nil {
			m.status = "onboarding: " + msg.err.Error()
			return m, nil
		}
		m.onboardView = onboardingview.New(m.onboarding, msg.status)
		m.propagateSize()
		m.screen = screenOnboarding
		return m, nil

	case onboardingview.DoneMsg:
		m.screen = screenMain
		m.status = "ready"
		return m, nil

	// Async results reach their view even when another screen is active.
	case progress.FrameMsg:
		var cmd tea.Cmd
		m.widgetView, cmd = m.widgetView.Update(msg)
		return m, cmd

	case statsview.HistoryLoadedMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case focusview.AppsFoundMsg:
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		return m, cmd

	case focusview.StartRequestMsg:
		return m, m.startCmd(msg.Input)

	case statsview.NewSessionMsg:
		return m, m.resetCmd()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+p" {
			return m, m.palette.Open()
		}
		// The form takes free text; single-key bindings only apply elsewhere.
		if m.screen != screenMain && !m.statsView.Filtering() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				return m, m.palette.Open()
			case "x":
				if m.screen == screenWidget {
					return m, m.stopCmd()
				}
			}
		}
	}

	return m.updateScreen(msg)
}

func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenOnboarding:
		m.onboardView, cmd = m.onboardView.Update(msg)
	case screenMain:
		m.focusView, cmd = m.focusView.Update(msg)
	case screenWidget:
		m.widgetView, cmd = m.widgetView.Update(msg)
	case screenStats:
		m.statsView, cmd = m.statsView.Update(msg)
	}
	return m, cmd
}

func (m Model) applyLayout(layout domain.Layout) (tea.Model, tea.Cmd) {
	m.layout = layout
	switch layout {
	case domain.LayoutWidget:
		m.screen = screenWidget
	case domain.LayoutStats:
		// window geometry only
	default:
		m.screen = screenMain
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) activeView() string {
	switch m.screen {
	case screenOnboarding:
		return m.onboardView.View()
	case screenWidget:
		return lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, m.widgetView.View())
	case screenStats:
		return m.statsView.View()
	default:
		return m.focusView.View()
	}
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.snapshot.Phase == sessiondto.PhaseRunning {
		left = theme.Hot.Render("● "+m.snapshot.Clock) + "  " + left
	}
	right := theme.Muted.Render("ctrl+p:palette  ctrl+c:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	switch strings.Fields(input)[0] {
	case "session:start":
		if m.screen != screenMain {
			m.status = "session:start is only available on the form"
			return m, nil
		}
		return m, m.startCmd(m.focusView.Input())
	case "session:stop":
		return m, m.stopCmd()
	case "session:new":
		return m, m.resetCmd()
	case "sites:unblock":
		return m, m.actionCmd("sites unblocked", m.session.Unblock)
	case "stats":
		m.screen = screenStats
		return m, m.statsView.Load()
	case "auth:request":
		return m, m.requestPermissionCmd()
	case "auth:setup":
		return m, m.completeAuthorizationCmd()
	case "onboarding:restart":
		return m, m.restartOnboardingCmd()
	default:
		m.status = "unknown command: " + input
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-2, 1)}
	m.onboardView, _ = m.onboardView.Update(sz)
	m.focusView, _ = m.focusView.Update(sz)
	m.widgetView, _ = m.widgetView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) startCmd(input sessiondto.StartInput) tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.Start(context.Background(), input)
		return sessionStartedMsg{err: err}
	}
}

func (m Model) stopCmd() tea.Cmd {
	return m.actionCmd("session stopped", m.session.Stop)
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		return resetDoneMsg{err: m.session.Reset(context.Background())}
	}
}

func (m Model) actionCmd(ok string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{ok: ok, err: fn(context.Background())}
	}
}

func (m Model) requestPermissionCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.onboarding.RequestPermission(context.Background())
		switch {
		case err != nil:
			return actionDoneMsg{err: err}
		case result.Warning != "":
			return actionDoneMsg{ok: result.Warning}
		default:
			return actionDoneMsg{ok: result.Message}
		}
	}
}

func (m Model) completeAuthorizationCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.onboarding.CompleteAuthorization(context.Background())
		return actionDoneMsg{ok: "persistent authorization installed", err: err}
	}
}

func (m Model) restartOnboardingCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.onboarding.Reset(context.Background())
		return onboardingResetMsg{status: status, err: err}
	}
}
