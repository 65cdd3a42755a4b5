package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focus/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

type command struct {
	name string
	desc string
}

// commands must match the switch in app/model.go executePalette.
var commands = []command{
	{"session:start", "start a session with the form"},
	{"session:stop", "stop the running session early"},
	{"session:new", "back to the form after a session"},
	{"sites:unblock", "remove a leftover block"},
	{"stats", "show session history"},
	{"auth:request", "authenticate for blocking"},
	{"auth:setup", "install passwordless blocking"},
	{"onboarding:restart", "show the walkthrough again"},
}

const maxShown = 5

// Palette is a command-palette overlay. Matching commands are filtered by
// prefix; up/down pick one and tab completes it.
type Palette struct {
	input    textinput.Model
	visible  bool
	selected int
	width    int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 64
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		matches := p.matches()
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			// A partial name runs the highlighted command.
			if val != "" && len(matches) > 0 && !isCommand(val) {
				val = matches[p.selected].name
			}
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if len(matches) > 0 {
				p.input.SetValue(matches[p.selected].name)
				p.input.CursorEnd()
				p.selected = 0
			}
			return p, nil
		case "up":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down":
			if p.selected < len(matches)-1 {
				p.selected++
			}
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
	}
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matches := p.matches(); len(matches) > 0 {
		sb.WriteString("\n")
		for i, c := range matches {
			line := c.name + "  " + hintStyle.Render(c.desc)
			if i == p.selected {
				sb.WriteString(selectedStyle.Render("› ") + line + "\n")
			} else {
				sb.WriteString("  " + line + "\n")
			}
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) matches() []command {
	prefix := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var out []command
	for _, c := range commands {
		if strings.HasPrefix(c.name, prefix) {
			out = append(out, c)
			if len(out) == maxShown {
				break
			}
		}
	}
	return out
}

func isCommand(name string) bool {
	for _, c := range commands {
		if c.name == name {
			return true
		}
	}
	return false
}
