// Package render writes metadata trees in the supported output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joacominatel/pgmeta/internal/metadata"
)

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatText}

// ParseFormat validates an output format name. An empty name means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: use json, yaml or text", s)
	}
}

// Tree writes the tree to w in the given format.
func Tree(w io.Writer, f Format, tree metadata.Tree) error {
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return Text(w, tree)
	default:
		return fmt.Errorf("unsupported output format %q", f)
	}
}

// Text writes the tree as an indented outline, sorted on every level.
func Text(w io.Writer, tree metadata.Tree) error {
	var b strings.Builder
	for _, dbName := range tree.Databases() {
		db := tree[dbName]
		fmt.Fprintf(&b, "%s\n", dbName)
		for _, schemaName := range db.Schemas() {
			schema := db[schemaName]
			fmt.Fprintf(&b, "  %s\n", schemaName)
			for _, tableName := range schema.Tables() {
				table := schema[tableName]
				fmt.Fprintf(&b, "    %s\n", tableName)

				names := table.Columns()
				width := 0
				for _, n := range names {
					width = max(width, len(n))
				}
				for _, n := range names {
					fmt.Fprintf(&b, "      %-*s  %s\n", width, n, table[n].Summary())
				}
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
