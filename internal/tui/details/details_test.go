package details

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joacominatel/pgmeta/internal/metadata"
	"github.com/joacominatel/pgmeta/internal/tui/explorer"
)

func i64(v int64) *int64 { return &v }

func columnNode(name string, c metadata.Column) *explorer.TreeNode {
	return &explorer.TreeNode{
		Kind:     explorer.NodeColumn,
		Name:     name,
		Database: "shop",
		Schema:   "sales",
		Table:    "orders",
		Column:   c,
	}
}

func TestLinesNumericColumn(t *testing.T) {
	n := columnNode("total", metadata.Column{
		Type:     "numeric",
		Required: true,
		Attrs:    metadata.NumericAttrs{Precision: i64(12), Scale: i64(2)},
	})

	text := strings.Join(Lines(n), "\n")
	assert.Contains(t, text, "orders.total")
	assert.Contains(t, text, "numeric")
	assert.Contains(t, text, "precision")
	assert.Contains(t, text, "12")
	assert.Contains(t, text, "null")
}

func TestLinesTable(t *testing.T) {
	n := &explorer.TreeNode{
		Kind:     explorer.NodeTable,
		Name:     "orders",
		Schema:   "sales",
		Children: []*explorer.TreeNode{columnNode("id", metadata.Column{Type: "int4"})},
	}

	text := strings.Join(Lines(n), "\n")
	assert.Contains(t, text, "sales.orders")
	assert.Contains(t, text, "columns")
}

func TestDocumentColumn(t *testing.T) {
	n := columnNode("name", metadata.Column{
		Type:     "varchar",
		Required: true,
		Attrs:    metadata.CharacterAttrs{Length: i64(50)},
	})

	doc, err := Document(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"varchar","required":true,"length":50}`, string(doc))
}

func TestDocumentSubtree(t *testing.T) {
	table := &explorer.TreeNode{
		Kind: explorer.NodeTable,
		Name: "orders",
		Children: []*explorer.TreeNode{
			columnNode("id", metadata.Column{Type: "uuid"}),
			columnNode("at", metadata.Column{Type: "timestamptz", Attrs: metadata.DateTimeAttrs{Precision: i64(6)}}),
		},
	}

	doc, err := Document(table)
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(doc, &got))
	assert.Equal(t, map[string]any{"type": "uuid", "required": false}, got["id"])
	assert.Equal(t, float64(6), got["at"]["precision"])
}

func TestViewWithoutSelection(t *testing.T) {
	m := New()
	assert.Contains(t, m.View(), "Nothing selected")
}

func TestCommandsWithoutTarget(t *testing.T) {
	assert.Nil(t, CopyCmd(nil))
	assert.Nil(t, ExportCmd(nil))
}
