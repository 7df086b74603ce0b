package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joacominatel/pgmeta/internal/database"
	"github.com/joacominatel/pgmeta/internal/metadata"
)

// fakeDriver serves a fixed row set per DSN.
type fakeDriver struct {
	mu         sync.Mutex
	rows       map[string][]metadata.Row
	connectErr error
	queryErr   error
	dsn        string
	queries    []string
	closed     bool
}

func (d *fakeDriver) Connect(_ context.Context, dsn string) error {
	if d.connectErr != nil {
		return d.connectErr
	}
	d.dsn = dsn
	return nil
}

func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

func (d *fakeDriver) Ping(context.Context) error { return nil }

func (d *fakeDriver) Query(_ context.Context, sql string) ([]metadata.Row, error) {
	d.mu.Lock()
	d.queries = append(d.queries, sql)
	d.mu.Unlock()
	if d.queryErr != nil {
		return nil, d.queryErr
	}
	return d.rows[d.dsn], nil
}

func (d *fakeDriver) ServerInfo(context.Context) (database.ServerInfo, error) {
	return database.ServerInfo{Database: d.DatabaseName(), Version: "16.4"}, nil
}

func (d *fakeDriver) DatabaseName() string {
	return strings.TrimPrefix(d.dsn, "postgres:///")
}

func row(db, schema, table, column, udt string) metadata.Row {
	return metadata.Row{TableCatalog: db, TableSchema: schema, TableName: table, ColumnName: column, UDTName: udt}
}

func TestServiceExtract(t *testing.T) {
	drv := &fakeDriver{rows: map[string][]metadata.Row{
		"postgres:///shop": {row("shop", "public", "orders", "id", "int4")},
	}}
	svc := NewService(drv, nil)

	require.NoError(t, svc.Connect(context.Background(), "postgres:///shop"))
	assert.True(t, svc.Connected())
	assert.Equal(t, "shop", svc.DatabaseName())

	tree, err := svc.Extract(context.Background(), metadata.Filter{Table: "orders"})
	require.NoError(t, err)
	_, ok := tree.Lookup("shop", "public", "orders", "id")
	assert.True(t, ok)
	assert.Equal(t, []string{metadata.BuildQuery(metadata.Filter{Table: "orders"})}, drv.queries)

	require.NoError(t, svc.Disconnect())
	assert.True(t, drv.closed)
	assert.False(t, svc.Connected())
}

func TestServiceExtractNotConnected(t *testing.T) {
	svc := NewService(&fakeDriver{}, nil)

	_, err := svc.Extract(context.Background(), metadata.Filter{})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestServiceErrors(t *testing.T) {
	connErr := errors.New("connection refused")
	svc := NewService(&fakeDriver{connectErr: connErr}, nil)

	err := svc.Connect(context.Background(), "postgres:///shop")
	var ce *ErrConnection
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, connErr)

	queryErr := errors.New("permission denied")
	svc = NewService(&fakeDriver{queryErr: queryErr}, nil)
	require.NoError(t, svc.Connect(context.Background(), "postgres:///shop"))

	_, err = svc.Extract(context.Background(), metadata.Filter{Schema: "private"})
	var ee *ErrExtract
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, metadata.Filter{Schema: "private"}, ee.Filter)
	assert.ErrorIs(t, err, queryErr)
}

func TestExtractAllMerges(t *testing.T) {
	rows := map[string][]metadata.Row{
		"postgres:///shop":  {row("shop", "public", "orders", "id", "int4")},
		"postgres:///audit": {row("audit", "log", "events", "at", "timestamptz")},
	}
	targets := []Target{
		{Name: "shop", DSN: "postgres:///shop"},
		{Name: "audit", DSN: "postgres:///audit"},
	}

	tree, err := ExtractAll(context.Background(), func() database.Driver {
		return &fakeDriver{rows: rows}
	}, nil, targets, metadata.Filter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"audit", "shop"}, tree.Databases())
	assert.Equal(t, metadata.Stats{Databases: 2, Schemas: 2, Tables: 2, Columns: 2}, tree.Count())
}

func TestExtractAllNamesFailingTarget(t *testing.T) {
	targets := []Target{{Name: "broken", DSN: "postgres:///broken"}}

	_, err := ExtractAll(context.Background(), func() database.Driver {
		return &fakeDriver{connectErr: errors.New("no route to host")}
	}, nil, targets, metadata.Filter{})

	var ce *ErrConnection
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "broken", ce.Target)
	assert.Contains(t, err.Error(), "broken")
}

func TestServicePing(t *testing.T) {
	svc := NewService(&fakeDriver{}, nil)
	assert.ErrorIs(t, svc.Ping(context.Background()), ErrNotConnected)

	require.NoError(t, svc.Connect(context.Background(), "postgresql://localhost/shop"))
	assert.NoError(t, svc.Ping(context.Background()))
}
