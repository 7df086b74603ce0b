package metadata

import "strings"

// characterMarkers identify character and text types by substring of the
// underlying type name (varchar, bpchar, char, text, citext, ...).
var characterMarkers = [...]string{"char", "text"}

// dateTimeTypes are the underlying type names of the date/time family.
var dateTimeTypes = map[string]struct{}{
	"date":        {},
	"time":        {},
	"timetz":      {},
	"timestamp":   {},
	"timestamptz": {},
}

const intervalType = "interval"

// Classify picks the attribute family of a row. The checks run in a fixed
// order, so a character type stays character even if its numeric fields are
// populated.
func Classify(r Row) Family {
	for _, m := range characterMarkers {
		if strings.Contains(r.UDTName, m) {
			return FamilyCharacter
		}
	}
	if r.NumericPrecisionRadix != nil {
		return FamilyNumeric
	}
	if _, ok := dateTimeTypes[r.UDTName]; ok {
		return FamilyDateTime
	}
	if r.UDTName == intervalType {
		return FamilyInterval
	}
	return FamilyOther
}

// Describe builds the column descriptor for a row.
func Describe(r Row) Column {
	c := Column{
		Type:     r.UDTName,
		Required: r.IsNullable != nil && !*r.IsNullable,
	}

	switch Classify(r) {
	case FamilyCharacter:
		c.Attrs = CharacterAttrs{Length: r.CharacterMaximumLength}
	case FamilyNumeric:
		c.Attrs = NumericAttrs{
			Precision:      r.NumericPrecision,
			Scale:          r.NumericScale,
			PrecisionRadix: r.NumericPrecisionRadix,
		}
	case FamilyDateTime:
		c.Attrs = DateTimeAttrs{Precision: r.DatetimePrecision}
	case FamilyInterval:
		c.Attrs = IntervalAttrs{Precision: r.IntervalPrecision, IntervalType: r.IntervalType}
	}
	return c
}

// Fold groups catalog rows into a tree. A column seen twice keeps the
// descriptor of the last row.
func Fold(rows []Row) Tree {
	tree := make(Tree)
	for _, r := range rows {
		table := tree.database(r.TableCatalog).schema(r.TableSchema).table(r.TableName)
		table[r.ColumnName] = Describe(r)
	}
	return tree
}
