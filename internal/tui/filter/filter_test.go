package filter

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joacominatel/pgmeta/internal/metadata"
)

func typeText(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestNewPrefills(t *testing.T) {
	f := metadata.Filter{Table: "orders", Database: "shop"}
	m := New(f)
	assert.Equal(t, f, m.Value())
}

func TestTypingAndApply(t *testing.T) {
	m := New(metadata.Filter{})
	m.SetFocused(true)

	m = typeText(m, "orders")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = typeText(m, "sales")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ApplyMsg)
	require.True(t, ok)
	assert.Equal(t, metadata.Filter{Table: "orders", Schema: "sales"}, msg.Filter)
	assert.Equal(t, msg.Filter, m.Value())
}

func TestFieldsWrap(t *testing.T) {
	m := New(metadata.Filter{})
	m.SetFocused(true)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = typeText(m, "shop")
	assert.Equal(t, metadata.Filter{Database: "shop"}, m.Value())
}

func TestClear(t *testing.T) {
	m := New(metadata.Filter{Table: "a", Schema: "b", Database: "c"})
	m.SetFocused(true)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.True(t, m.Value().IsZero())
}

func TestUnfocusedIgnoresInput(t *testing.T) {
	m := New(metadata.Filter{})
	m = typeText(m, "orders")
	assert.True(t, m.Value().IsZero())
}
