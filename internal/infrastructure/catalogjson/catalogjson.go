// Package catalogjson stores the brand-partitioned catalog as one JSON document.
package catalogjson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/modulargunworks/catalog/internal/domain"
)

// Encode renders the catalog with sorted brand keys and two-space indentation
func Encode(catalog domain.Catalog) ([]byte, error) {
	if catalog == nil {
		catalog = domain.Catalog{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Writer writes the catalog document to a fixed path, replacing any previous one
type Writer struct {
	path string
}

// NewWriter creates a writer for path
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the destination of the document
func (w *Writer) Path() string {
	return w.path
}

// Write serializes the catalog and replaces the document on disk
func (w *Writer) Write(ctx context.Context, catalog domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(catalog)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrWriteCatalog, err)
	}
	if err := writeFileAtomic(w.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrWriteCatalog, w.path, err)
	}
	return nil
}

// Reader loads the catalog document written by Writer
type Reader struct {
	path string
}

// NewReader creates a reader for path
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Read parses the document; a missing file is domain.ErrCatalogNotFound
func (r *Reader) Read(ctx context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCatalogNotFound
		}
		return nil, fmt.Errorf("read catalog %s: %w", r.path, err)
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", r.path, err)
	}
	if catalog == nil {
		catalog = domain.Catalog{}
	}
	return catalog, nil
}
