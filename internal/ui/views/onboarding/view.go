package onboarding

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	onboardingdto "focus/internal/modules/onboarding/dto"
	"focus/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Next(ctx context.Context) (onboardingdto.Status, error)
	Prev(ctx context.Context) (onboardingdto.Status, error)
	CompleteAuthorization(ctx context.Context) (onboardingdto.Status, error)
	Skip(ctx context.Context) (onboardingdto.Status, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StatusMsg struct {
	Status onboardingdto.Status
	Err    error
}

// DoneMsg is emitted once the user is onboarded.
type DoneMsg struct {
	Status onboardingdto.Status
}

var stepBodies = []string{
	"Focus helps you do one thing at a time.\nSet a goal, pick a duration and start.",
	"While a session runs, the websites and apps you choose are blocked.\nWhen the timer ends, everything is unblocked again.",
	"• Block websites through the hosts file\n• Close distracting apps as soon as they open\n• Review your past sessions",
	"Blocking websites needs administrator rights.\nAuthorize once and Focus will not ask again.",
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	status onboardingdto.Status
	busy   bool
	err    error
	width  int
	height int
}

func New(port Port, status onboardingdto.Status) Model {
	return Model{port: port, status: status}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StatusMsg:
		m.busy = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.status = msg.Status
		if msg.Status.Onboarded {
			return m, func() tea.Msg { return DoneMsg{Status: msg.Status} }
		}

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "right", "l", "enter":
			if m.status.Step == m.status.TotalSteps-1 {
				return m, m.call(m.port.CompleteAuthorization)
			}
			return m, m.call(m.port.Next)
		case "left", "h":
			return m, m.call(m.port.Prev)
		case "s":
			return m, m.call(m.port.Skip)
		}
	}
	return m, nil
}

func (m Model) View() string {
	step := m.status.Step
	if step < 0 || step >= len(stepBodies) {
		step = 0
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.status.StepTitle) + "\n\n")
	sb.WriteString(stepBodies[step] + "\n\n")
	sb.WriteString(m.dots() + "\n\n")
	switch {
	case m.busy:
		sb.WriteString(theme.Muted.Render("Waiting for authorization…") + "\n\n")
	case m.err != nil:
		sb.WriteString(theme.Error.Render(m.err.Error()) + "\n\n")
	}
	hint := "←/→: navigate  s: skip"
	if m.status.Step == m.status.TotalSteps-1 {
		hint = "enter: authorize  ←: back  s: skip"
	}
	sb.WriteString(theme.Muted.Render(hint))
	box := theme.PaneActive.Width(min(max(m.width-8, 30), 72)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) dots() string {
	parts := make([]string, 0, m.status.TotalSteps)
	for i := 0; i < m.status.TotalSteps; i++ {
		if i == m.status.Step {
			parts = append(parts, theme.Hot.Render("●"))
		} else {
			parts = append(parts, theme.Muted.Render("○"))
		}
	}
	return strings.Join(parts, " ") + theme.Muted.Render(fmt.Sprintf("  %d/%d", m.status.Step+1, m.status.TotalSteps))
}

func (m *Model) call(fn func(context.Context) (onboardingdto.Status, error)) tea.Cmd {
	m.busy = true
	return func() tea.Msg {
		status, err := fn(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}
