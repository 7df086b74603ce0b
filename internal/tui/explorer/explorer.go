package explorer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/pgmeta/internal/metadata"
	"github.com/joacominatel/pgmeta/internal/tui/theme"
)

// NodeKind identifies the type of a tree node.
type NodeKind int

const (
	NodeDatabase NodeKind = iota
	NodeSchema
	NodeTable
	NodeColumn
)

// TreeNode represents a single node in the metadata tree.
type TreeNode struct {
	Kind     NodeKind
	Name     string
	Children []*TreeNode
	Expanded bool

	// Path of the node; empty for levels above it.
	Database string
	Schema   string
	Table    string

	// Column holds the descriptor of NodeColumn nodes.
	Column metadata.Column
}

// flatItem is a visible item in the flattened tree view.
type flatItem struct {
	node  *TreeNode
	depth int
}

// Model is the explorer (metadata tree) component.
type Model struct {
	roots   []*TreeNode
	items   []flatItem
	cursor  int
	width   int
	height  int
	focused bool
	loading bool
}

// New creates a new explorer model.
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

// Focused returns whether the explorer has focus.
func (m Model) Focused() bool {
	return m.focused
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(l bool) {
	m.loading = l
}

// SetTree populates the explorer from a metadata tree. Databases start
// expanded; everything below starts collapsed.
func (m *Model) SetTree(tree metadata.Tree) {
	m.roots = nil
	for _, dbName := range tree.Databases() {
		db := tree[dbName]
		dbNode := &TreeNode{Kind: NodeDatabase, Name: dbName, Database: dbName, Expanded: true}

		for _, schemaName := range db.Schemas() {
			schema := db[schemaName]
			schemaNode := &TreeNode{Kind: NodeSchema, Name: schemaName, Database: dbName, Schema: schemaName}

			for _, tableName := range schema.Tables() {
				table := schema[tableName]
				tableNode := &TreeNode{Kind: NodeTable, Name: tableName, Database: dbName, Schema: schemaName, Table: tableName}

				for _, colName := range table.Columns() {
					tableNode.Children = append(tableNode.Children, &TreeNode{
						Kind:     NodeColumn,
						Name:     colName,
						Database: dbName,
						Schema:   schemaName,
						Table:    tableName,
						Column:   table[colName],
					})
				}
				schemaNode.Children = append(schemaNode.Children, tableNode)
			}
			dbNode.Children = append(dbNode.Children, schemaNode)
		}
		m.roots = append(m.roots, dbNode)
	}

	m.cursor = 0
	m.flatten()
	m.loading = false
}

// Selected returns the node under the cursor.
func (m Model) Selected() (*TreeNode, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil, false
	}
	return m.items[m.cursor].node, true
}

// flatten rebuilds the flat item list from the tree.
func (m *Model) flatten() {
	m.items = nil
	for _, root := range m.roots {
		m.flattenNode(root, 0)
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

func (m *Model) flattenNode(node *TreeNode, depth int) {
	m.items = append(m.items, flatItem{node: node, depth: depth})
	if node.Expanded {
		for _, child := range node.Children {
			m.flattenNode(child, depth+1)
		}
	}
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the explorer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = max(0, len(m.items)-1)
		case "enter", "right", "l":
			m.toggleExpand()
		case "left", "h":
			m.collapse()
		}
	}

	return m, nil
}

func (m *Model) toggleExpand() {
	node, ok := m.Selected()
	if !ok || node.Kind == NodeColumn {
		return
	}
	node.Expanded = !node.Expanded
	m.flatten()
}

// collapse folds the selected node, or jumps to its parent when it is
// already folded.
func (m *Model) collapse() {
	node, ok := m.Selected()
	if !ok {
		return
	}

	if node.Expanded {
		node.Expanded = false
		m.flatten()
		return
	}

	depth := m.items[m.cursor].depth
	for i := m.cursor - 1; i >= 0; i-- {
		if m.items[i].depth < depth {
			m.cursor = i
			return
		}
	}
}

// View renders the explorer.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	title := titleStyle.Render("Metadata")

	if m.loading {
		return title + "\n" + theme.StyleMuted.Render("  Loading...")
	}

	if len(m.roots) == 0 {
		return title + "\n" + theme.StyleMuted.Render("  No columns matched")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	// Calculate visible area
	visibleHeight := max(1, m.height-2)

	// Scroll offset to keep cursor visible
	scrollOffset := 0
	if m.cursor >= visibleHeight {
		scrollOffset = m.cursor - visibleHeight + 1
	}

	for i := scrollOffset; i < len(m.items) && i < scrollOffset+visibleHeight; i++ {
		b.WriteString(m.renderNode(m.items[i], i == m.cursor))
		if i < scrollOffset+visibleHeight-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderNode(item flatItem, selected bool) string {
	node := item.node
	indent := strings.Repeat("  ", item.depth)

	icon := "  "
	if node.Kind != NodeColumn {
		if node.Expanded {
			icon = "▼ "
		} else {
			icon = "▶ "
		}
	}

	name := node.Name
	if node.Kind == NodeColumn {
		name += " " + theme.FamilyStyle(node.Column.Family()).Render(node.Column.Type)
	}

	line := indent + icon + name

	// Truncate to width
	if m.width > 4 && lipgloss.Width(line) > m.width-2 {
		r := []rune(indent + icon + node.Name)
		if len(r) > m.width-4 {
			r = r[:m.width-4]
		}
		line = string(r) + ".."
	}

	if selected {
		return lipgloss.NewStyle().
			Foreground(theme.ColorHighlight).
			Bold(true).
			Render(line)
	}

	return line
}
