package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/pgmeta/internal/tui/theme"
)

const filterHeight = 4

type binding struct {
	keys, desc string
}

var helpSections = []struct {
	title    string
	bindings []binding
}{
	{"Global", []binding{
		{"q / Ctrl+C", "Quit"},
		{"Tab  /", "Focus the filter"},
		{"?", "Toggle this help"},
	}},
	{"Explorer", []binding{
		{"↑/k  ↓/j", "Move"},
		{"g  G", "Jump to top/bottom"},
		{"Enter →/l", "Expand or fold"},
		{"←/h", "Fold, or go to parent"},
		{"c", "Copy selection as JSON"},
		{"e", "Export tree to a JSON file"},
		{"r", "Reload from the database"},
	}},
	{"Filter", []binding{
		{"↑/↓", "Switch field"},
		{"Enter", "Apply"},
		{"Ctrl+K", "Clear all fields"},
		{"Esc / Tab", "Back to explorer"},
	}},
}

// View renders the entire application.
func (m Model) View() string {
	if m.showHelp {
		return m.center(m.viewHelp())
	}
	switch m.mode {
	case ModeSelectConnection:
		return m.center(m.viewSelectConnection())
	case ModeConnect:
		return m.center(m.viewConnect())
	default:
		return m.viewMain()
	}
}

func (m Model) center(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func banner() []string {
	return []string{
		"",
		lipgloss.NewStyle().Foreground(theme.ColorPrimary).Bold(true).Padding(1, 0).Render("pgmeta"),
		theme.StyleMuted.Render("Column catalog browser."),
		"",
	}
}

func (m Model) errorLine() []string {
	if m.err == nil {
		return nil
	}
	return []string{"", theme.StyleError.Render("  Error: " + m.err.Error())}
}

func (m Model) viewSelectConnection() string {
	heading := lipgloss.NewStyle().Foreground(theme.ColorPrimary).Bold(true)
	selected := lipgloss.NewStyle().Foreground(theme.ColorHighlight).Bold(true)

	lines := append(banner(), heading.Render("Saved Connections"))
	for i, conn := range m.cfg.Connections {
		label := fmt.Sprintf("%s (%s)", conn.Name, conn.DisplayString())
		if i == m.connCursor {
			lines = append(lines, selected.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}

	lines = append(lines, "")
	if m.connCursor == len(m.cfg.Connections) {
		lines = append(lines, selected.Render("> [New Connection]"))
	} else {
		lines = append(lines, "  [New Connection]")
	}

	lines = append(lines, m.errorLine()...)
	lines = append(lines, "", theme.StyleMuted.Render("  ↑/↓: Navigate  Enter: Connect  n: New  q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewConnect() string {
	hint := "Enter: Connect │ Ctrl+C: Quit"
	if len(m.cfg.Connections) > 0 {
		hint = "Esc: Back │ " + hint
	}

	lines := append(banner(),
		lipgloss.NewStyle().Foreground(theme.ColorPrimary).Render("Enter connection string:"),
		"  "+m.connInput.View(),
	)
	lines = append(lines, m.errorLine()...)
	lines = append(lines, "", theme.StyleMuted.Render("  "+hint))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) explorerWidth() int {
	return min(max(m.width/3, 26), 48)
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	body := m.height - 1
	right := m.width - m.explorerWidth() - 1

	m.explorer.SetSize(m.explorerWidth(), body)
	m.filter.SetSize(right, filterHeight)
	m.details.SetSize(right, body-filterHeight-1)
	m.statusbar.SetWidth(m.width)
}

func (m Model) pane(p Pane) lipgloss.Style {
	if m.activePane == p {
		return theme.StyleActiveBorder
	}
	return theme.StyleBorder
}

func (m Model) viewMain() string {
	left := m.explorerWidth()
	right := m.width - left - 1
	body := m.height - 3

	explorerView := m.pane(PaneExplorer).
		Width(left - 2).
		Height(body).
		Render(m.explorer.View())

	filterView := m.pane(PaneFilter).
		Width(right - 2).
		Height(filterHeight).
		Render(m.filter.View())

	detailsView := theme.StyleBorder.
		Width(right - 2).
		Height(max(1, body-filterHeight-2)).
		Render(m.details.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			explorerView,
			lipgloss.JoinVertical(lipgloss.Left, filterView, detailsView),
		),
		m.statusbar.View(),
	)
}

func (m Model) viewHelp() string {
	title := lipgloss.NewStyle().Foreground(theme.ColorPrimary).Bold(true)
	section := lipgloss.NewStyle().Foreground(theme.ColorHighlight).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(16)

	lines := []string{title.Render("pgmeta - Keyboard Shortcuts")}
	for _, s := range helpSections {
		lines = append(lines, "", section.Render(s.title))
		for _, b := range s.bindings {
			lines = append(lines, "  "+keyStyle.Render(b.keys)+theme.StyleMuted.Render(b.desc))
		}
	}
	lines = append(lines, "", theme.StyleMuted.Render("Press any key to close"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
