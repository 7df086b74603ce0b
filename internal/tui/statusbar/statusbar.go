package statusbar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/pgmeta/internal/metadata"
	"github.com/joacominatel/pgmeta/internal/tui/theme"
)

const hints = "Tab: Filter │ c: Copy │ e: Export │ r: Reload │ ?: Help │ q: Quit"

// Model is the one-line status bar: source on the left, counts and the last
// message or key hints on the right.
type Model struct {
	width   int
	source  string
	online  bool
	pane    string
	stats   *metadata.Stats
	message string
}

// New creates a status bar for a disconnected session.
func New() Model {
	return Model{pane: "explorer"}
}

// SetWidth updates the component width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetSource names where the tree comes from. online is false for trees that
// were read from a file.
func (m *Model) SetSource(name string, online bool) {
	m.source = name
	m.online = online
}

// SetActivePane updates the displayed pane name.
func (m *Model) SetActivePane(pane string) {
	m.pane = pane
}

// SetStats shows the size of the loaded tree.
func (m *Model) SetStats(st metadata.Stats) {
	m.stats = &st
}

// SetMessage replaces the key hints until the next message.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is a no-op.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) left() string {
	dot, label := theme.ColorError, "disconnected"
	switch {
	case m.source != "" && m.online:
		dot, label = theme.ColorSuccess, m.source
	case m.source != "":
		dot, label = theme.ColorMuted, m.source
	}

	parts := []string{
		lipgloss.NewStyle().Foreground(dot).Render("●") + " " + label,
		theme.StyleMuted.Render("[" + m.pane + "]"),
	}
	if m.stats != nil {
		parts = append(parts, theme.StyleMuted.Render(fmt.Sprintf("%d tables · %d columns", m.stats.Tables, m.stats.Columns)))
	}
	return strings.Join(parts, " ")
}

// View renders the status bar.
func (m Model) View() string {
	left := m.left()
	right := hints
	if m.message != "" {
		right = m.message
	}

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-4)
	return theme.StyleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
