package metadata

import (
	"maps"
	"slices"
)

// Tree maps database → schema → table → column name → descriptor.
type Tree map[string]Database

// Database maps schema names to schemas.
type Database map[string]Schema

// Schema maps table names to tables.
type Schema map[string]Table

// Table maps column names to column descriptors.
type Table map[string]Column

// Stats counts the entries on each level of a tree.
type Stats struct {
	Databases int `json:"databases"`
	Schemas   int `json:"schemas"`
	Tables    int `json:"tables"`
	Columns   int `json:"columns"`
}

func (t Tree) database(name string) Database {
	db, ok := t[name]
	if !ok {
		db = make(Database)
		t[name] = db
	}
	return db
}

func (d Database) schema(name string) Schema {
	s, ok := d[name]
	if !ok {
		s = make(Schema)
		d[name] = s
	}
	return s
}

func (s Schema) table(name string) Table {
	t, ok := s[name]
	if !ok {
		t = make(Table)
		s[name] = t
	}
	return t
}

// Lookup returns the descriptor at the given path.
func (t Tree) Lookup(database, schema, table, column string) (Column, bool) {
	c, ok := t[database][schema][table][column]
	return c, ok
}

// Merge copies every column of other into t. On duplicate paths the
// descriptor from other wins.
func (t Tree) Merge(other Tree) {
	for dbName, db := range other {
		dst := t.database(dbName)
		for schemaName, schema := range db {
			dstSchema := dst.schema(schemaName)
			for tableName, table := range schema {
				dstTable := dstSchema.table(tableName)
				maps.Copy(dstTable, table)
			}
		}
	}
}

// Count returns the number of entries on each level.
func (t Tree) Count() Stats {
	var st Stats
	st.Databases = len(t)
	for _, db := range t {
		st.Schemas += len(db)
		for _, schema := range db {
			st.Tables += len(schema)
			for _, table := range schema {
				st.Columns += len(table)
			}
		}
	}
	return st
}

// Databases returns the database names in sorted order.
func (t Tree) Databases() []string { return slices.Sorted(maps.Keys(t)) }

// Schemas returns the schema names in sorted order.
func (d Database) Schemas() []string { return slices.Sorted(maps.Keys(d)) }

// Tables returns the table names in sorted order.
func (s Schema) Tables() []string { return slices.Sorted(maps.Keys(s)) }

// Columns returns the column names in sorted order.
func (t Table) Columns() []string { return slices.Sorted(maps.Keys(t)) }
