package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrHeaderNotFound is returned when no line carries all header markers
	ErrHeaderNotFound = errors.New("header row not found")

	// ErrReadSheet is returned when the vendor export cannot be read
	ErrReadSheet = errors.New("failed to read sheet")

	// ErrWriteCatalog is returned when the catalog document cannot be written
	ErrWriteCatalog = errors.New("failed to write catalog")

	// ErrCatalogNotFound is returned when no catalog document has been written yet
	ErrCatalogNotFound = errors.New("catalog document not found")

	// ErrBrandNotFound is returned when a brand has no entry in the catalog
	ErrBrandNotFound = errors.New("brand not found in catalog")

	// ErrRunInProgress is returned when an ingestion run is already active
	ErrRunInProgress = errors.New("ingestion run already in progress")

	// ErrNoRunYet is returned when no ingestion run has completed
	ErrNoRunYet = errors.New("no ingestion run has completed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// ParseError reports a structural failure in the vendor export
type ParseError struct {
	Path         string
	LinesScanned int
	Markers      []string
	Err          error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	return fmt.Sprintf("parse %s: %v after %d lines (markers %q)", where, e.Err, e.LinesScanned, e.Markers)
}

func (e *ParseError) Unwrap() error { return e.Err }
