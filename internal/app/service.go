package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/joacominatel/pgmeta/internal/database"
	"github.com/joacominatel/pgmeta/internal/metadata"
)

// ErrNotConnected is returned when an extraction is requested before Connect.
var ErrNotConnected = errors.New("not connected")

// Service coordinates application-level operations between the user
// surfaces (CLI, TUI, HTTP) and the database.
type Service struct {
	driver    database.Driver
	extractor *metadata.Extractor
	dsn       string
}

// NewService creates a new application service. A nil extractor falls back
// to a silent default.
func NewService(driver database.Driver, extractor *metadata.Extractor) *Service {
	if extractor == nil {
		extractor = metadata.NewExtractor()
	}
	return &Service{driver: driver, extractor: extractor}
}

// Connect establishes a database connection.
func (s *Service) Connect(ctx context.Context, dsn string) error {
	if err := s.driver.Connect(ctx, dsn); err != nil {
		return &ErrConnection{Cause: err}
	}
	s.dsn = dsn
	return nil
}

// Disconnect closes the database connection.
func (s *Service) Disconnect() error {
	s.dsn = ""
	return s.driver.Close()
}

// Connected reports whether Connect succeeded and Disconnect was not called.
func (s *Service) Connected() bool {
	return s.dsn != ""
}

// Extract loads the metadata tree for the filter from the connected database.
func (s *Service) Extract(ctx context.Context, f metadata.Filter) (metadata.Tree, error) {
	if !s.Connected() {
		return nil, &ErrExtract{Filter: f, Cause: ErrNotConnected}
	}
	tree, err := s.extractor.Extract(ctx, s.driver, f)
	if err != nil {
		return nil, &ErrExtract{Filter: f, Cause: err}
	}
	return tree, nil
}

// Ping checks that the connection is still alive.
func (s *Service) Ping(ctx context.Context) error {
	if !s.Connected() {
		return ErrNotConnected
	}
	return s.driver.Ping(ctx)
}

// ServerInfo describes the connected server.
func (s *Service) ServerInfo(ctx context.Context) (database.ServerInfo, error) {
	return s.driver.ServerInfo(ctx)
}

// DatabaseName returns the current database name.
func (s *Service) DatabaseName() string {
	return s.driver.DatabaseName()
}

// Target is a named connection to extract from.
type Target struct {
	Name string
	DSN  string
}

// ExtractAll connects to every target concurrently, extracts the filtered
// metadata from each and merges the trees. Each target uses its own driver
// from newDriver. The first failure cancels the remaining extractions.
func ExtractAll(ctx context.Context, newDriver func() database.Driver, extractor *metadata.Extractor, targets []Target, f metadata.Filter) (metadata.Tree, error) {
	trees := make([]metadata.Tree, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			svc := NewService(newDriver(), extractor)
			if err := svc.Connect(ctx, t.DSN); err != nil {
				var connErr *ErrConnection
				if errors.As(err, &connErr) {
					connErr.Target = t.Name
				}
				return err
			}
			defer svc.Disconnect()

			tree, err := svc.Extract(ctx, f)
			if err != nil {
				var extractErr *ErrExtract
				if errors.As(err, &extractErr) {
					extractErr.Target = t.Name
				}
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(metadata.Tree)
	for _, tree := range trees {
		merged.Merge(tree)
	}
	return merged, nil
}
