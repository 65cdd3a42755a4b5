package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	sessiondto "focus/internal/modules/session/dto"
	"focus/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	History(ctx context.Context) ([]sessiondto.HistoryEntry, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type HistoryLoadedMsg struct {
	Entries []sessiondto.HistoryEntry
	Err     error
}

// NewSessionMsg asks the app model to reset and return to the form.
type NewSessionMsg struct{}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry sessiondto.HistoryEntry
	now   time.Time
}

func (i entryItem) Title() string { return i.entry.Goal }

func (i entryItem) Description() string {
	parts := []string{i.entry.Span}
	if !i.entry.Timestamp.IsZero() {
		parts = append(parts, humanize.RelTime(i.entry.Timestamp, i.now, "ago", "from now"))
	}
	if n := len(i.entry.BlockedSites); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, "site", "sites")))
	}
	if len(i.entry.BlockedApps) > 0 {
		labels := make([]string, 0, len(i.entry.BlockedApps))
		for _, app := range i.entry.BlockedApps {
			labels = append(labels, app.Label)
		}
		parts = append(parts, strings.Join(labels, ", "))
	}
	return strings.Join(parts, " · ")
}

func (i entryItem) FilterValue() string { return i.entry.Goal }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    HistoryPort
	list    list.Model
	spinner spinner.Model
	loading bool
	total   int
	err     error
	now     func() time.Time
	width   int
	height  int
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Sessions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, now: time.Now}
}

// Load fetches the history and shows the spinner until it arrives.
func (m *Model) Load() tea.Cmd {
	m.loading = true
	m.err = nil
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-4, 3))

	case HistoryLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		now := m.now()
		items := make([]list.Item, len(msg.Entries))
		total := 0
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e, now: now}
			total += e.Duration
		}
		m.total = total
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if msg.String() == "n" && !m.Filtering() {
			return m, func() tea.Msg { return NewSessionMsg{} }
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading sessions…")
	}
	if m.err != nil {
		return theme.Error.Render("Could not load sessions: "+m.err.Error()) + "\n\n" +
			theme.Muted.Render("n: new session")
	}
	header := fmt.Sprintf("%s  %s",
		theme.Title.Render("History"),
		theme.Muted.Render(fmt.Sprintf("%d %s · %s focused in total",
			len(m.list.Items()), plural(len(m.list.Items()), "session", "sessions"), totalSpan(m.total))))
	return header + "\n\n" + m.list.View() + "\n" + theme.Muted.Render("n: new session  /: filter")
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.History(context.Background())
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

func totalSpan(seconds int) string {
	d := time.Duration(seconds) * time.Second
	if d < time.Minute {
		return "<1m"
	}
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
