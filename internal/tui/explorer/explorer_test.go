package explorer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joacominatel/pgmeta/internal/metadata"
)

func sampleTree() metadata.Tree {
	n := int64(50)
	return metadata.Fold([]metadata.Row{
		{ColumnName: "name", UDTName: "varchar", CharacterMaximumLength: &n, TableName: "orders", TableSchema: "sales", TableCatalog: "shop"},
		{ColumnName: "id", UDTName: "int4", TableName: "orders", TableSchema: "sales", TableCatalog: "shop"},
		{ColumnName: "id", UDTName: "int4", TableName: "users", TableSchema: "auth", TableCatalog: "shop"},
		{ColumnName: "id", UDTName: "int4", TableName: "events", TableSchema: "public", TableCatalog: "audit"},
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func names(m Model) []string {
	out := make([]string, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it.node.Name)
	}
	return out
}

func TestSetTreeSortsAndExpandsDatabases(t *testing.T) {
	m := New()
	m.SetTree(sampleTree())

	assert.Equal(t, []string{"audit", "public", "shop", "auth", "sales"}, names(m))

	node, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, NodeDatabase, node.Kind)
	assert.Equal(t, "audit", node.Name)
}

func TestExpandToColumns(t *testing.T) {
	m := New()
	m.SetFocused(true)
	m.SetTree(sampleTree())

	// shop > sales > orders
	m = press(m, "G", "enter", "down", "enter", "down")
	node, _ := m.Selected()
	require.Equal(t, NodeColumn, node.Kind)
	assert.Equal(t, "id", node.Name)
	assert.Equal(t, "orders", node.Table)
	assert.Equal(t, "sales", node.Schema)
	assert.Equal(t, "shop", node.Database)
	assert.Equal(t, "int4", node.Column.Type)

	m = press(m, "down")
	node, _ = m.Selected()
	assert.Equal(t, "name", node.Name)
	assert.Equal(t, metadata.FamilyCharacter, node.Column.Family())
}

func TestCollapseJumpsToParent(t *testing.T) {
	m := New()
	m.SetFocused(true)
	m.SetTree(sampleTree())

	m = press(m, "G", "enter", "down", "enter", "down", "left")
	node, _ := m.Selected()
	assert.Equal(t, NodeTable, node.Kind)
	assert.Equal(t, "orders", node.Name)

	m = press(m, "left")
	node, _ = m.Selected()
	assert.Equal(t, NodeTable, node.Kind)
	assert.False(t, node.Expanded)

	m = press(m, "left")
	node, _ = m.Selected()
	assert.Equal(t, NodeSchema, node.Kind)
	assert.Equal(t, "sales", node.Name)
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := New()
	m.SetTree(sampleTree())

	m = press(m, "down", "down")
	node, _ := m.Selected()
	assert.Equal(t, "audit", node.Name)
}

func TestEmptyTree(t *testing.T) {
	m := New()
	m.SetTree(metadata.Tree{})

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No columns matched")
}
