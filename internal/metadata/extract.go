// Package metadata builds the column catalog query and folds its result set
// into a database → schema → table → column tree.
package metadata

import (
	"context"
	"errors"
	"log/slog"
)

// Executor runs a catalog query and returns its rows.
type Executor interface {
	Query(ctx context.Context, sql string) ([]Row, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, sql string) ([]Row, error)

// Query calls f.
func (f ExecutorFunc) Query(ctx context.Context, sql string) ([]Row, error) {
	return f(ctx, sql)
}

// Rows is an Executor that answers every query with the same rows.
type Rows []Row

// Query returns r.
func (r Rows) Query(context.Context, string) ([]Row, error) {
	return r, nil
}

// ErrNoExecutor is reported when Extract is called without an executor.
var ErrNoExecutor = errors.New("no executor supplied")

// UsageError reports a programming mistake in how Extract was called. It is
// returned before any query is built or executed.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return "metadata: " + e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Extractor runs the catalog query through an executor and folds the rows.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExtractor creates an Extractor. Without options it logs nothing.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract queries the catalog for the filter and returns the folded tree.
// Errors from exec are returned as is.
func (e *Extractor) Extract(ctx context.Context, exec Executor, f Filter) (Tree, error) {
	if exec == nil {
		return nil, &UsageError{Err: ErrNoExecutor}
	}
	if fn, ok := exec.(ExecutorFunc); ok && fn == nil {
		return nil, &UsageError{Err: ErrNoExecutor}
	}

	sql := BuildQuery(f)
	e.logger.DebugContext(ctx, "catalog query", "sql", sql)

	rows, err := exec.Query(ctx, sql)
	if err != nil {
		return nil, err
	}

	tree := Fold(rows)
	st := tree.Count()
	e.logger.DebugContext(ctx, "metadata folded",
		"rows", len(rows),
		"databases", st.Databases,
		"schemas", st.Schemas,
		"tables", st.Tables,
		"columns", st.Columns,
	)
	return tree, nil
}

// Extract runs an extraction with a default Extractor.
func Extract(ctx context.Context, exec Executor, f Filter) (Tree, error) {
	return NewExtractor().Extract(ctx, exec, f)
}
