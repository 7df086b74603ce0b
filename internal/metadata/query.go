package metadata

import (
	"strings"

	"github.com/lib/pq"
)

// catalogView is the catalog view every extraction reads from.
const catalogView = "information_schema.columns"

// Columns is the fixed projection selected from the catalog view, in order.
// Every field Fold reads is part of it.
var Columns = [...]string{
	"column_name",
	"udt_name",
	"data_type",
	"character_maximum_length",
	"table_name",
	"table_schema",
	"table_catalog",
	"is_nullable",
	"numeric_precision",
	"numeric_scale",
	"numeric_precision_radix",
	"datetime_precision",
	"interval_type",
	"interval_precision",
}

// Filter restricts an extraction to a table, schema and/or database.
// Empty fields are ignored; set fields are combined with AND.
type Filter struct {
	Table    string `json:"table,omitempty" form:"table"`
	Schema   string `json:"schema,omitempty" form:"schema"`
	Database string `json:"database,omitempty" form:"database"`
}

// IsZero reports whether no constraint is set.
func (f Filter) IsZero() bool {
	return f.Table == "" && f.Schema == "" && f.Database == ""
}

// predicates returns the catalog column/value pairs for the set fields,
// always in table, schema, database order.
func (f Filter) predicates() [][2]string {
	var preds [][2]string
	if f.Table != "" {
		preds = append(preds, [2]string{"table_name", f.Table})
	}
	if f.Schema != "" {
		preds = append(preds, [2]string{"table_schema", f.Schema})
	}
	if f.Database != "" {
		preds = append(preds, [2]string{"table_catalog", f.Database})
	}
	return preds
}

// Match reports whether a row satisfies the filter. It applies the same
// predicates BuildQuery sends to the server, for row sets that were captured
// earlier and are folded offline.
func (f Filter) Match(r Row) bool {
	return (f.Table == "" || f.Table == r.TableName) &&
		(f.Schema == "" || f.Schema == r.TableSchema) &&
		(f.Database == "" || f.Database == r.TableCatalog)
}

// Apply returns the rows that match the filter.
func (f Filter) Apply(rows []Row) []Row {
	if f.IsZero() {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// BuildQuery returns the catalog query for the filter. Filter values are
// embedded as escaped string literals.
func BuildQuery(f Filter) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(Columns[:], ","))
	b.WriteString(" FROM ")
	b.WriteString(catalogView)

	for i, p := range f.predicates() {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(p[0])
		b.WriteString("=")
		b.WriteString(pq.QuoteLiteral(p[1]))
	}
	return b.String()
}
