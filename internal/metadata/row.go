package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Row is one record of the catalog view: a single column of a single table.
// Nil pointers stand for SQL NULL.
type Row struct {
	ColumnName             string  `json:"column_name"`
	UDTName                string  `json:"udt_name"`
	DataType               string  `json:"data_type"`
	CharacterMaximumLength *int64  `json:"character_maximum_length"`
	TableName              string  `json:"table_name"`
	TableSchema            string  `json:"table_schema"`
	TableCatalog           string  `json:"table_catalog"`
	IsNullable             *bool   `json:"is_nullable"`
	NumericPrecision       *int64  `json:"numeric_precision"`
	NumericScale           *int64  `json:"numeric_scale"`
	NumericPrecisionRadix  *int64  `json:"numeric_precision_radix"`
	DatetimePrecision      *int64  `json:"datetime_precision"`
	IntervalType           *string `json:"interval_type"`
	IntervalPrecision      *int64  `json:"interval_precision"`
}

// UnmarshalJSON accepts is_nullable either as a boolean or as the catalog's
// YES/NO text.
func (r *Row) UnmarshalJSON(data []byte) error {
	type plain Row
	aux := struct {
		*plain
		IsNullable json.RawMessage `json:"is_nullable"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.IsNullable)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		r.IsNullable = nil
		return nil
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		r.IsNullable = &b
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("is_nullable: %w", err)
	}
	nullable, err := ParseNullable(s)
	if err != nil {
		return err
	}
	r.IsNullable = nullable
	return nil
}

// ParseNullable converts the catalog's yes_or_no text into a nullability
// flag. An empty string yields nil.
func ParseNullable(s string) (*bool, error) {
	var v bool
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "YES", "TRUE", "T", "1":
		v = true
	case "NO", "FALSE", "F", "0":
		v = false
	default:
		return nil, fmt.Errorf("is_nullable: unrecognized value %q", s)
	}
	return &v, nil
}

// ReadRows decodes a JSON array of catalog rows, as captured from a previous
// run of the catalog query.
func ReadRows(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}
