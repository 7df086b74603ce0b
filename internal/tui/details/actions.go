package details

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joacominatel/pgmeta/internal/metadata"
	"github.com/joacominatel/pgmeta/internal/render"
	"github.com/joacominatel/pgmeta/internal/tui/explorer"
)

// StatusNotifyMsg tells the app to show a message in the status bar.
type StatusNotifyMsg struct {
	Message string
}

// Document returns the JSON form of the selected node: the descriptor of a
// column, or the subtree below a table, schema or database.
func Document(n *explorer.TreeNode) ([]byte, error) {
	if n.Kind == explorer.NodeColumn {
		return json.MarshalIndent(n.Column, "", "  ")
	}
	return json.MarshalIndent(subtree(n), "", "  ")
}

func subtree(n *explorer.TreeNode) any {
	if n.Kind == explorer.NodeColumn {
		return n.Column
	}
	out := make(map[string]any, len(n.Children))
	for _, c := range n.Children {
		out[c.Name] = subtree(c)
	}
	return out
}

// CopyCmd copies the JSON document of the node to the clipboard.
func CopyCmd(n *explorer.TreeNode) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		doc, err := Document(n)
		if err != nil {
			return StatusNotifyMsg{Message: "Copy failed: " + err.Error()}
		}
		if err := clipboard.WriteAll(string(doc)); err != nil {
			return StatusNotifyMsg{Message: "Copy failed: " + err.Error()}
		}
		return StatusNotifyMsg{Message: "Copied " + n.Name}
	}
}

// ExportCmd writes the whole tree to a timestamped JSON file in the working
// directory.
func ExportCmd(tree metadata.Tree) tea.Cmd {
	if tree == nil {
		return nil
	}
	return func() tea.Msg {
		ts := time.Now().Format("20060102_150405")
		filename := fmt.Sprintf("pgmeta_export_%s.json", ts)

		f, err := os.Create(filename)
		if err != nil {
			return StatusNotifyMsg{Message: "Export failed: " + err.Error()}
		}
		defer f.Close()

		if err := render.Tree(f, render.FormatJSON, tree); err != nil {
			return StatusNotifyMsg{Message: "Export failed: " + err.Error()}
		}
		st := tree.Count()
		return StatusNotifyMsg{Message: fmt.Sprintf("Exported %d columns to %s", st.Columns, filename)}
	}
}
