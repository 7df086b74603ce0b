package metadata

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	var gotSQL string
	exec := ExecutorFunc(func(_ context.Context, sql string) ([]Row, error) {
		gotSQL = sql
		return catalogFixture(), nil
	})

	tree, err := Extract(context.Background(), exec, Filter{Schema: "aschema"})
	require.NoError(t, err)

	assert.Equal(t, BuildQuery(Filter{Schema: "aschema"}), gotSQL)
	c, ok := tree.Lookup("adb", "aschema", "atable", "a")
	require.True(t, ok)
	assert.Equal(t, "varchar", c.Type)
}

func TestExtractPassesExecutorErrorThrough(t *testing.T) {
	execErr := errors.New("permission denied for information_schema")
	exec := ExecutorFunc(func(context.Context, string) ([]Row, error) {
		return nil, execErr
	})

	tree, err := Extract(context.Background(), exec, Filter{})
	assert.Nil(t, tree)
	assert.Same(t, execErr, err)
}

func TestExtractWithoutExecutor(t *testing.T) {
	tests := []struct {
		name string
		exec Executor
	}{
		{name: "nil interface", exec: nil},
		{name: "nil func", exec: ExecutorFunc(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(context.Background(), tt.exec, Filter{})
			require.Error(t, err)

			var usage *UsageError
			assert.ErrorAs(t, err, &usage)
			assert.ErrorIs(t, err, ErrNoExecutor)
		})
	}
}

func TestExtractLogsQuery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewExtractor(WithLogger(logger)).Extract(context.Background(), Rows(catalogFixture()), Filter{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "catalog query")
	assert.Contains(t, out, "information_schema.columns")
	assert.Contains(t, out, "columns=10")
}

func TestExtractVarcharScenario(t *testing.T) {
	rows := Rows{
		{UDTName: "varchar", CharacterMaximumLength: i64(244), TableCatalog: "adb", TableSchema: "aschema", TableName: "atable", ColumnName: "a", IsNullable: flag(true)},
		{UDTName: "varchar", CharacterMaximumLength: i64(244), TableCatalog: "adb", TableSchema: "aschema", TableName: "atable", ColumnName: "b", IsNullable: flag(false)},
	}

	tree, err := Extract(context.Background(), rows, Filter{})
	require.NoError(t, err)

	assert.Equal(t, Tree{"adb": {"aschema": {"atable": {
		"a": {Type: "varchar", Required: false, Attrs: CharacterAttrs{Length: i64(244)}},
		"b": {Type: "varchar", Required: true, Attrs: CharacterAttrs{Length: i64(244)}},
	}}}}, tree)
}
