package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joacominatel/pgmeta/internal/app"
	"github.com/joacominatel/pgmeta/internal/config"
	"github.com/joacominatel/pgmeta/internal/database"
	"github.com/joacominatel/pgmeta/internal/database/postgres"
	"github.com/joacominatel/pgmeta/internal/metadata"
)

const envDSN = "PGMETA_DSN"

var errNoTarget = errors.New("no database to read: use --dsn, --connection, --all, --rows or set " + envDSN)

// targetFlags select where metadata is read from.
type targetFlags struct {
	dsn        string
	connection string
	all        bool
	rowsFile   string
}

func (t targetFlags) offline() bool {
	return t.rowsFile != "" || t.all
}

func addTargetFlags(cmd *cobra.Command, t *targetFlags) {
	cmd.Flags().StringVar(&t.dsn, "dsn", "", "PostgreSQL connection string (env "+envDSN+")")
	cmd.Flags().StringVarP(&t.connection, "connection", "c", "", "Saved connection name")
	cmd.Flags().BoolVar(&t.all, "all", false, "Read every saved connection and merge the trees")
	cmd.Flags().StringVar(&t.rowsFile, "rows", "", "Fold a captured JSON row set instead of querying (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("dsn", "connection", "all", "rows")
}

func addFilterFlags(cmd *cobra.Command, f *metadata.Filter) {
	cmd.Flags().StringVar(&f.Table, "table", "", "Only columns of this table")
	cmd.Flags().StringVar(&f.Schema, "schema", "", "Only columns of this schema")
	cmd.Flags().StringVar(&f.Database, "database", "", "Only columns of this database")
}

// resolveDSN picks the connection string: --dsn, then --connection, then
// the environment, then the default saved connection.
func (t targetFlags) resolveDSN(cfg *config.Config) (string, error) {
	if t.dsn != "" {
		return t.dsn, nil
	}
	if t.connection != "" {
		conn, ok := cfg.FindConnection(t.connection)
		if !ok {
			return "", fmt.Errorf("connection %q not found", t.connection)
		}
		return connectionDSN(conn)
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}
	if conn := config.DefaultConnection(cfg); conn != nil {
		return connectionDSN(*conn)
	}
	return "", errNoTarget
}

func connectionDSN(conn config.Connection) (string, error) {
	conn, err := config.ResolvePassword(conn)
	if err != nil {
		return "", err
	}
	return conn.DSN(), nil
}

// extractor produces a metadata tree for a filter.
type extractor interface {
	Extract(ctx context.Context, f metadata.Filter) (metadata.Tree, error)
}

// extractFunc adapts a function to extractor.
type extractFunc func(ctx context.Context, f metadata.Filter) (metadata.Tree, error)

// Extract calls fn.
func (fn extractFunc) Extract(ctx context.Context, f metadata.Filter) (metadata.Tree, error) {
	return fn(ctx, f)
}

func newDriver() database.Driver {
	return postgres.New()
}

// source opens the target selected by t. The returned cleanup releases any
// connection it holds and must always be called.
func (o *rootOptions) source(ctx context.Context, t targetFlags, stdin io.Reader) (extractor, func(), error) {
	ex := metadata.NewExtractor(metadata.WithLogger(o.logger))
	noop := func() {}

	switch {
	case t.rowsFile != "":
		rows, err := readRowsFile(t.rowsFile, stdin)
		if err != nil {
			return nil, noop, err
		}
		return extractFunc(func(ctx context.Context, f metadata.Filter) (metadata.Tree, error) {
			return ex.Extract(ctx, metadata.Rows(f.Apply(rows)), f)
		}), noop, nil

	case t.all:
		targets, err := o.savedTargets()
		if err != nil {
			return nil, noop, err
		}
		return extractFunc(func(ctx context.Context, f metadata.Filter) (metadata.Tree, error) {
			return app.ExtractAll(ctx, newDriver, ex, targets, f)
		}), noop, nil
	}

	dsn, err := t.resolveDSN(o.cfg)
	if err != nil {
		return nil, noop, err
	}
	service := app.NewService(newDriver(), ex)
	if err := service.Connect(ctx, dsn); err != nil {
		return nil, noop, err
	}
	if info, err := service.ServerInfo(ctx); err == nil {
		o.logger.Debug("connected", "database", info.Database, "user", info.User, "version", info.Version)
	}
	return service, func() { _ = service.Disconnect() }, nil
}

func (o *rootOptions) savedTargets() ([]app.Target, error) {
	if len(o.cfg.Connections) == 0 {
		return nil, errors.New("no saved connections")
	}
	targets := make([]app.Target, 0, len(o.cfg.Connections))
	for _, conn := range o.cfg.Connections {
		dsn, err := connectionDSN(conn)
		if err != nil {
			return nil, err
		}
		targets = append(targets, app.Target{Name: conn.Name, DSN: dsn})
	}
	return targets, nil
}

func readRowsFile(path string, stdin io.Reader) ([]metadata.Row, error) {
	if path == "-" {
		return metadata.ReadRows(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rows: %w", err)
	}
	defer f.Close()
	return metadata.ReadRows(f)
}
