package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focus/internal/modules/session/dto"
	"focus/internal/ui/theme"
)

// Model is the compact countdown shown while a session runs.
type Model struct {
	snapshot sessiondto.Snapshot
	bar      progress.Model
	width    int
}

func New() Model {
	bar := progress.New(
		progress.WithGradient(string(theme.Lavender), string(theme.Sapphire)),
		progress.WithoutPercentage(),
	)
	return Model{bar: bar}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-8, 10), 60)
	case progress.FrameMsg:
		model, cmd := m.bar.Update(msg)
		if bar, ok := model.(progress.Model); ok {
			m.bar = bar
		}
		return m, cmd
	}
	return m, nil
}

// SetSnapshot updates the countdown and animates the bar towards the
// elapsed fraction.
func (m *Model) SetSnapshot(snap sessiondto.Snapshot) tea.Cmd {
	m.snapshot = snap
	return m.bar.SetPercent(snap.Progress)
}

func (m Model) View() string {
	s := m.snapshot
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render("Focusing on") + "\n")
	sb.WriteString(theme.Title.Render(s.Goal) + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Peach).Render(s.Clock) + "\n\n")
	sb.WriteString(m.bar.View() + "\n\n")
	if n := len(s.BlockedSites) + len(s.BlockedApps); n > 0 {
		labels := append([]string{}, s.BlockedSites...)
		for _, app := range s.BlockedApps {
			labels = append(labels, app.Label)
		}
		sb.WriteString(theme.Muted.Render("Blocking: "+strings.Join(labels, ", ")) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("x: stop early"))
	return theme.PaneActive.Render(sb.String())
}
