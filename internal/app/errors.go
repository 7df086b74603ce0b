package app

import (
	"fmt"

	"github.com/joacominatel/pgmeta/internal/metadata"
)

// ErrConnection represents a database connection error.
type ErrConnection struct {
	Target string
	Cause  error
}

func (e *ErrConnection) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("connection error (%s): %v", e.Target, e.Cause)
	}
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ErrConnection) Unwrap() error {
	return e.Cause
}

// ErrExtract represents a failed metadata extraction.
type ErrExtract struct {
	Target string
	Filter metadata.Filter
	Cause  error
}

func (e *ErrExtract) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("extract error (%s): %v", e.Target, e.Cause)
	}
	return fmt.Sprintf("extract error: %v", e.Cause)
}

func (e *ErrExtract) Unwrap() error {
	return e.Cause
}

// ErrConfig represents a configuration error.
type ErrConfig struct {
	Cause error
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("config error: %v", e.Cause)
}

func (e *ErrConfig) Unwrap() error {
	return e.Cause
}
