package metadata

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	f, err := os.Open("testdata/rows.json")
	require.NoError(t, err)
	defer f.Close()

	rows, err := ReadRows(f)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	require.NotNil(t, rows[0].IsNullable)
	assert.False(t, *rows[0].IsNullable)
	require.NotNil(t, rows[1].IsNullable)
	assert.True(t, *rows[1].IsNullable)
	require.NotNil(t, rows[2].IsNullable)
	assert.False(t, *rows[2].IsNullable)
	assert.Nil(t, rows[3].IsNullable)

	tree := Fold(rows)
	id, ok := tree.Lookup("shop", "public", "orders", "id")
	require.True(t, ok)
	assert.Equal(t, Column{Type: "int4", Required: true, Attrs: NumericAttrs{Precision: i64(32), Scale: i64(0), PrecisionRadix: i64(2)}}, id)

	note, ok := tree.Lookup("shop", "public", "orders", "note")
	require.True(t, ok)
	assert.Equal(t, Column{Type: "text", Attrs: CharacterAttrs{}}, note)

	ttl, ok := tree.Lookup("shop", "auth", "sessions", "ttl")
	require.True(t, ok)
	assert.Equal(t, Column{Type: "interval", Attrs: IntervalAttrs{Precision: i64(3), IntervalType: str("DAY TO SECOND")}}, ttl)
}

func TestReadRowsInvalid(t *testing.T) {
	_, err := ReadRows(strings.NewReader(`{"column_name": "a"}`))
	assert.Error(t, err)

	_, err = ReadRows(strings.NewReader(`[{"column_name": "a", "is_nullable": "maybe"}]`))
	assert.ErrorContains(t, err, "is_nullable")
}

func TestRowJSONKeepsOtherFields(t *testing.T) {
	var r Row
	require.NoError(t, json.Unmarshal([]byte(`{"column_name":"a","udt_name":"bpchar","character_maximum_length":8,"is_nullable":true}`), &r))

	assert.Equal(t, "a", r.ColumnName)
	assert.Equal(t, "bpchar", r.UDTName)
	assert.Equal(t, i64(8), r.CharacterMaximumLength)
	assert.Equal(t, flag(true), r.IsNullable)
}

func TestParseNullable(t *testing.T) {
	tests := []struct {
		in      string
		want    *bool
		wantErr bool
	}{
		{in: "YES", want: flag(true)},
		{in: "no", want: flag(false)},
		{in: "true", want: flag(true)},
		{in: "", want: nil},
		{in: "perhaps", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNullable(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
