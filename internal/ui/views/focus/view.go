package focus

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focus/internal/modules/session/domain"
	sessiondto "focus/internal/modules/session/dto"
	"focus/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	SearchApps(ctx context.Context, query string) ([]sessiondto.InstalledApp, error)
	SuggestSites(query string) []sessiondto.Site
	DurationOptions() []sessiondto.DurationOption
}

// ─── messages ────────────────────────────────────────────────────────────────

// StartRequestMsg asks the app model to start a session with the form data.
type StartRequestMsg struct {
	Input sessiondto.StartInput
}

type AppsFoundMsg struct {
	Query string
	Apps  []sessiondto.InstalledApp
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

type field int

const (
	fieldGoal field = iota
	fieldDuration
	fieldBlock
	fieldCount
)

const maxSuggestions = 6

type suggestion struct {
	tag  domain.Tag
	hint string
}

type Model struct {
	port        Port
	goal        textinput.Model
	block       textinput.Model
	durations   []sessiondto.DurationOption
	durIdx      int
	focus       field
	tags        domain.TagList
	sites       []suggestion
	apps        []suggestion
	selected    int
	status      string
	statusIsErr bool
	width       int
}

func New(port Port) Model {
	goal := textinput.New()
	goal.Placeholder = "What do you want to focus on?"
	goal.CharLimit = 200
	goal.Focus()

	block := textinput.New()
	block.Placeholder = "Block a website or app…"
	block.CharLimit = 200

	durations := port.DurationOptions()
	idx := 0
	for i, d := range durations {
		if d.Label == domain.DefaultDurationLabel {
			idx = i
		}
	}
	return Model{port: port, goal: goal, block: block, durations: durations, durIdx: idx}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.goal.Width = max(msg.Width-12, 20)
		m.block.Width = max(msg.Width-12, 20)
		return m, nil

	case AppsFoundMsg:
		if msg.Query != strings.TrimSpace(m.block.Value()) {
			return m, nil
		}
		m.apps = nil
		if msg.Err == nil {
			for _, app := range msg.Apps {
				m.apps = append(m.apps, suggestion{
					tag:  domain.Tag{Label: app.Name, Kind: domain.TagApp, Executable: app.Executable, Icon: app.Icon},
					hint: "app · " + app.Executable,
				})
			}
		}
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "ctrl+s":
			return m, m.submit()
		}
		switch m.focus {
		case fieldDuration:
			return m.updateDuration(msg)
		case fieldBlock:
			return m.updateBlock(msg)
		default:
			if msg.String() == "enter" {
				return m, m.setFocus(fieldDuration)
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldGoal:
		m.goal, cmd = m.goal.Update(msg)
	case fieldBlock:
		m.block, cmd = m.block.Update(msg)
	}
	return m, cmd
}

func (m Model) updateDuration(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.durIdx > 0 {
			m.durIdx--
		}
	case "right", "l":
		if m.durIdx < len(m.durations)-1 {
			m.durIdx++
		}
	case "enter":
		return m, m.setFocus(fieldBlock)
	}
	return m, nil
}

func (m Model) updateBlock(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down":
		if m.selected < len(m.suggestions())-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		if strings.TrimSpace(m.block.Value()) == "" {
			return m, m.submit()
		}
		m.addSelected()
		return m, nil
	case "backspace":
		if m.block.Value() == "" {
			if n := len(m.tags.Tags()); n > 0 {
				m.tags.Remove(n - 1)
			}
			return m, nil
		}
	}

	before := m.block.Value()
	var cmd tea.Cmd
	m.block, cmd = m.block.Update(msg)
	if m.block.Value() == before {
		return m, cmd
	}
	query := strings.TrimSpace(m.block.Value())
	m.sites = siteSuggestions(m.port.SuggestSites(query))
	m.apps = nil
	m.selected = 0
	if query == "" {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.searchAppsCmd(query))
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus") + "\n\n")

	sb.WriteString(m.label(fieldGoal, "Goal") + "\n")
	sb.WriteString(m.goal.View() + "\n\n")

	sb.WriteString(m.label(fieldDuration, "Duration") + "\n")
	sb.WriteString(m.renderDurations() + "\n\n")

	sb.WriteString(m.label(fieldBlock, "Block") + "\n")
	sb.WriteString(m.block.View() + "\n")
	if m.focus == fieldBlock {
		for i, s := range m.suggestions() {
			line := s.tag.Label + "  " + theme.Muted.Render(s.hint)
			if i == m.selected {
				line = theme.Hot.Render("› ") + line
			} else {
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString("\n" + m.renderTags() + "\n")

	if m.status != "" {
		style := theme.Muted
		if m.statusIsErr {
			style = theme.Error
		}
		sb.WriteString("\n" + style.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("tab: next field  ←/→: duration  enter: add  ctrl+s: start"))
	return sb.String()
}

// Tags returns the current block list.
func (m Model) Tags() []domain.Tag {
	return m.tags.Tags()
}

// SetStatus shows a message under the form; errors are highlighted.
func (m *Model) SetStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// Clear empties the form for a new session, keeping the duration.
func (m *Model) Clear() tea.Cmd {
	m.goal.SetValue("")
	m.block.SetValue("")
	m.tags.Clear()
	m.sites, m.apps = nil, nil
	m.selected = 0
	m.SetStatus("", false)
	return m.setFocus(fieldGoal)
}

// Input builds the start request from the form.
func (m Model) Input() sessiondto.StartInput {
	sites, apps := m.tags.Split()
	targets := make([]sessiondto.AppTarget, 0, len(apps))
	for _, a := range apps {
		targets = append(targets, sessiondto.AppTarget{Label: a.Label, Executable: a.Executable, Icon: a.Icon})
	}
	input := sessiondto.StartInput{
		Goal:         m.goal.Value(),
		BlockedSites: sites,
		BlockedApps:  targets,
	}
	if len(m.durations) > 0 {
		input.DurationSeconds = m.durations[m.durIdx].Seconds
	} else {
		input.DurationLabel = domain.DefaultDurationLabel
	}
	return input
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.goal.Blur()
	m.block.Blur()
	switch f {
	case fieldGoal:
		return m.goal.Focus()
	case fieldBlock:
		return m.block.Focus()
	}
	return nil
}

func (m Model) submit() tea.Cmd {
	input := m.Input()
	return func() tea.Msg { return StartRequestMsg{Input: input} }
}

func (m Model) suggestions() []suggestion {
	out := append([]suggestion(nil), m.apps...)
	out = append(out, m.sites...)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (m *Model) clampSelection() {
	if n := len(m.suggestions()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

// addSelected adds the highlighted suggestion, or the raw text as a
// website when nothing is suggested.
func (m *Model) addSelected() {
	tag := domain.Tag{Label: strings.TrimSpace(m.block.Value()), Kind: domain.TagWebsite}
	if all := m.suggestions(); len(all) > 0 && m.selected < len(all) {
		tag = all[m.selected].tag
	}
	if !m.tags.Add(tag) {
		m.SetStatus(tag.Label+" is already blocked", true)
		return
	}
	m.SetStatus("", false)
	m.block.SetValue("")
	m.sites, m.apps = nil, nil
	m.selected = 0
}

func (m Model) label(f field, text string) string {
	if m.focus == f {
		return theme.Hot.Render(text)
	}
	return theme.Muted.Render(text)
}

func (m Model) renderDurations() string {
	parts := make([]string, 0, len(m.durations))
	for i, d := range m.durations {
		if i == m.durIdx {
			parts = append(parts, theme.Hot.Render("["+d.Label+"]"))
		} else {
			parts = append(parts, theme.Muted.Render(" "+d.Label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTags() string {
	tags := m.tags.Tags()
	if len(tags) == 0 {
		return theme.Muted.Render("Nothing blocked yet")
	}
	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		icon := "🌐 "
		if t.Kind == domain.TagApp {
			icon = "▣ "
		}
		chips = append(chips, theme.Chip.Render(icon+t.Label))
	}
	return lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(strings.Join(chips, ""))
}

func (m Model) searchAppsCmd(query string) tea.Cmd {
	return func() tea.Msg {
		apps, err := m.port.SearchApps(context.Background(), query)
		return AppsFoundMsg{Query: query, Apps: apps, Err: err}
	}
}

func siteSuggestions(sites []sessiondto.Site) []suggestion {
	out := make([]suggestion, 0, len(sites))
	for _, s := range sites {
		out = append(out, suggestion{
			tag:  domain.Tag{Label: s.URL, Kind: domain.TagWebsite},
			hint: s.Category + " · " + s.Name,
		})
	}
	return out
}
