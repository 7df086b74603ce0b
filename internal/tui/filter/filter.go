package filter

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/pgmeta/internal/metadata"
	"github.com/joacominatel/pgmeta/internal/tui/theme"
)

// ApplyMsg is sent when the user submits the filter form.
type ApplyMsg struct {
	Filter metadata.Filter
}

const (
	fieldTable = iota
	fieldSchema
	fieldDatabase
	fieldCount
)

var labels = [fieldCount]string{"table", "schema", "database"}

// Model is the filter form: one input per catalog constraint.
type Model struct {
	inputs  [fieldCount]textinput.Model
	active  int
	width   int
	focused bool
}

// New creates a filter form prefilled with f.
func New(f metadata.Filter) Model {
	var m Model
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		ti.Placeholder = "any"
		m.inputs[i] = ti
	}
	m.SetFilter(f)
	return m
}

// SetSize updates the component width.
func (m *Model) SetSize(w, _ int) {
	m.width = w
	for i := range m.inputs {
		m.inputs[i].Width = max(8, w-14)
	}
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(f bool) {
	m.focused = f
	for i := range m.inputs {
		if f && i == m.active {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// Focused returns whether the form has focus.
func (m Model) Focused() bool {
	return m.focused
}

// SetFilter replaces the form values.
func (m *Model) SetFilter(f metadata.Filter) {
	m.inputs[fieldTable].SetValue(f.Table)
	m.inputs[fieldSchema].SetValue(f.Schema)
	m.inputs[fieldDatabase].SetValue(f.Database)
}

// Value returns the filter currently entered.
func (m Model) Value() metadata.Filter {
	return metadata.Filter{
		Table:    strings.TrimSpace(m.inputs[fieldTable].Value()),
		Schema:   strings.TrimSpace(m.inputs[fieldSchema].Value()),
		Database: strings.TrimSpace(m.inputs[fieldDatabase].Value()),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			m.move(-1)
			return m, nil
		case "down":
			m.move(1)
			return m, nil
		case "enter":
			f := m.Value()
			return m, func() tea.Msg { return ApplyMsg{Filter: f} }
		case "ctrl+k":
			m.SetFilter(metadata.Filter{})
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
	return m, cmd
}

func (m *Model) move(delta int) {
	m.active = (m.active + delta + fieldCount) % fieldCount
	m.SetFocused(m.focused)
}

// View renders the form.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1).
		Render("Filter")

	label := lipgloss.NewStyle().Foreground(theme.ColorMuted)
	activeLabel := lipgloss.NewStyle().Foreground(theme.ColorHighlight).Bold(true)

	lines := []string{title}
	for i, in := range m.inputs {
		style := label
		if m.focused && i == m.active {
			style = activeLabel
		}
		lines = append(lines, "  "+style.Render(padRight(labels[i], 9))+" "+in.View())
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
