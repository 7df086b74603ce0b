package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joacominatel/pgmeta/internal/database"
	"github.com/joacominatel/pgmeta/internal/metadata"
)

// ErrNotConnected is returned by operations that need an open pool.
var ErrNotConnected = errors.New("not connected")

// Driver implements the database.Driver interface for PostgreSQL.
type Driver struct {
	pool   *pgxpool.Pool
	dbName string
}

// New creates a new PostgreSQL driver.
func New() *Driver {
	return &Driver{}
}

// Connect establishes a connection pool to PostgreSQL.
func (d *Driver) Connect(ctx context.Context, dsn string) error {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConns = 2
	cfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping: %w", err)
	}

	d.pool = pool
	d.dbName = cfg.ConnConfig.Database
	return nil
}

// Close closes the connection pool.
func (d *Driver) Close() error {
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
	return nil
}

// Ping checks if the connection is alive.
func (d *Driver) Ping(ctx context.Context) error {
	if d.pool == nil {
		return ErrNotConnected
	}
	return d.pool.Ping(ctx)
}

// catalogRecord is the scan target for one row of information_schema.columns.
// Domain-typed catalog columns arrive as their base types (name, int4,
// varchar), so they scan into plain Go values.
type catalogRecord struct {
	ColumnName             string  `db:"column_name"`
	UDTName                string  `db:"udt_name"`
	DataType               string  `db:"data_type"`
	CharacterMaximumLength *int64  `db:"character_maximum_length"`
	TableName              string  `db:"table_name"`
	TableSchema            string  `db:"table_schema"`
	TableCatalog           string  `db:"table_catalog"`
	IsNullable             *string `db:"is_nullable"`
	NumericPrecision       *int64  `db:"numeric_precision"`
	NumericScale           *int64  `db:"numeric_scale"`
	NumericPrecisionRadix  *int64  `db:"numeric_precision_radix"`
	DatetimePrecision      *int64  `db:"datetime_precision"`
	IntervalType           *string `db:"interval_type"`
	IntervalPrecision      *int64  `db:"interval_precision"`
}

func (r catalogRecord) row() (metadata.Row, error) {
	row := metadata.Row{
		ColumnName:             r.ColumnName,
		UDTName:                r.UDTName,
		DataType:               r.DataType,
		CharacterMaximumLength: r.CharacterMaximumLength,
		TableName:              r.TableName,
		TableSchema:            r.TableSchema,
		TableCatalog:           r.TableCatalog,
		NumericPrecision:       r.NumericPrecision,
		NumericScale:           r.NumericScale,
		NumericPrecisionRadix:  r.NumericPrecisionRadix,
		DatetimePrecision:      r.DatetimePrecision,
		IntervalType:           r.IntervalType,
		IntervalPrecision:      r.IntervalPrecision,
	}
	if r.IsNullable != nil {
		nullable, err := metadata.ParseNullable(*r.IsNullable)
		if err != nil {
			return metadata.Row{}, err
		}
		row.IsNullable = nullable
	}
	return row, nil
}

// Query runs a catalog query and returns its rows. It implements
// metadata.Executor.
func (d *Driver) Query(ctx context.Context, sql string) ([]metadata.Row, error) {
	if d.pool == nil {
		return nil, ErrNotConnected
	}

	rows, err := d.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[catalogRecord])
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}

	out := make([]metadata.Row, 0, len(records))
	for _, rec := range records {
		row, err := rec.row()
		if err != nil {
			return nil, fmt.Errorf("column %s.%s.%s: %w", rec.TableSchema, rec.TableName, rec.ColumnName, err)
		}
		out = append(out, row)
	}
	return out, nil
}

// ServerInfo returns the connected database, role and server version.
func (d *Driver) ServerInfo(ctx context.Context) (database.ServerInfo, error) {
	if d.pool == nil {
		return database.ServerInfo{}, ErrNotConnected
	}

	var info database.ServerInfo
	err := d.pool.QueryRow(ctx, queryServerInfo).Scan(&info.Database, &info.User, &info.Version)
	if err != nil {
		return database.ServerInfo{}, fmt.Errorf("server info: %w", err)
	}
	return info, nil
}

// DatabaseName returns the name of the connected database.
func (d *Driver) DatabaseName() string {
	return d.dbName
}
