package details

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/pgmeta/internal/metadata"
	"github.com/joacominatel/pgmeta/internal/tui/explorer"
	"github.com/joacominatel/pgmeta/internal/tui/theme"
)

// Model shows the attributes of the node selected in the explorer.
type Model struct {
	node    *explorer.TreeNode
	width   int
	height  int
	focused bool
}

// New creates a new details model.
func New() Model {
	return Model{}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// SetNode sets the node to describe.
func (m *Model) SetNode(n *explorer.TreeNode) {
	m.node = n
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages (details has no interactive behavior).
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the details pane.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1).
		Render("Details")

	if m.node == nil {
		return title + "\n" + theme.StyleMuted.Render("  Nothing selected")
	}

	return title + "\n" + strings.Join(Lines(m.node), "\n")
}

// Lines returns the key/value lines describing a node.
func Lines(n *explorer.TreeNode) []string {
	var kv [][2]string
	switch n.Kind {
	case explorer.NodeDatabase:
		kv = append(kv, [2]string{"database", n.Name}, [2]string{"schemas", fmt.Sprint(len(n.Children))})
	case explorer.NodeSchema:
		kv = append(kv, [2]string{"schema", n.Database + "." + n.Name}, [2]string{"tables", fmt.Sprint(len(n.Children))})
	case explorer.NodeTable:
		kv = append(kv, [2]string{"table", n.Schema + "." + n.Name}, [2]string{"columns", fmt.Sprint(len(n.Children))})
	case explorer.NodeColumn:
		kv = append(kv,
			[2]string{"column", n.Table + "." + n.Name},
			[2]string{"type", n.Column.Type},
			[2]string{"required", fmt.Sprint(n.Column.Required)},
			[2]string{"family", n.Column.Family().String()},
		)
		kv = append(kv, attributeLines(n.Column.Attrs)...)
	}

	key := lipgloss.NewStyle().Foreground(theme.ColorMuted)
	lines := make([]string, 0, len(kv))
	for _, p := range kv {
		lines = append(lines, fmt.Sprintf("  %s %s", key.Render(fmt.Sprintf("%-16s", p[0])), p[1]))
	}
	return lines
}

func attributeLines(a metadata.Attributes) [][2]string {
	switch a := a.(type) {
	case metadata.CharacterAttrs:
		return [][2]string{{"length", intOrNull(a.Length)}}
	case metadata.NumericAttrs:
		return [][2]string{
			{"precision", intOrNull(a.Precision)},
			{"scale", intOrNull(a.Scale)},
			{"precision_radix", intOrNull(a.PrecisionRadix)},
		}
	case metadata.DateTimeAttrs:
		return [][2]string{{"precision", intOrNull(a.Precision)}}
	case metadata.IntervalAttrs:
		it := "null"
		if a.IntervalType != nil {
			it = *a.IntervalType
		}
		return [][2]string{{"precision", intOrNull(a.Precision)}, {"interval_type", it}}
	}
	return nil
}

func intOrNull(v *int64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(*v)
}
