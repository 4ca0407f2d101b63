package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/modulargunworks/catalog/internal/domain"
)

// sheetRow builds a 15-column row with the given cells filled in
func sheetRow(cells map[int]string) []string {
	row := make([]string, 15)
	for idx, v := range cells {
		row[idx] = v
	}
	return row
}

func headerRow() []string {
	return sheetRow(map[int]string{1: "CAT PG#", 2: "CATEGORY / SKU", 3: "CASE QTY", 4: "ITEM DESCRIPTION", 7: "UPC", 13: "MAP", 14: "MSRP"})
}

func sectionRow(label string) []string {
	return sheetRow(map[int]string{2: label})
}

func productRow(sku, name, msrp, mapPrice string) []string {
	return sheetRow(map[int]string{
		1:  "12",
		2:  sku,
		3:  "10",
		4:  name,
		7:  "0123456789012",
		9:  "$99.00",
		10: "$109.00",
		13: mapPrice,
		14: msrp,
	})
}

// buildSheet renders free-form preamble lines followed by CSV rows
func buildSheet(t *testing.T, preamble []string, rows ...[]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, line := range preamble {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return buf.Bytes()
}

// fakeImageStore serves directory listings from memory
type fakeImageStore struct {
	dirs       map[string][]string
	listCalls  int
	resetCalls int
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{dirs: make(map[string][]string)}
}

func (f *fakeImageStore) add(dir string, names ...string) {
	f.dirs[dir] = append(f.dirs[dir], names...)
}

func (f *fakeImageStore) List(ctx context.Context, dir string) ([]string, error) {
	f.listCalls++
	return f.dirs[dir], nil
}

func (f *fakeImageStore) Exists(ctx context.Context, dir, name string) bool {
	for _, n := range f.dirs[dir] {
		if n == name {
			return true
		}
	}
	return false
}

func (f *fakeImageStore) Reset(ctx context.Context) {
	f.resetCalls++
}

var (
	testFullDir  = filepath.Join("images", "PERFORMANCE GEAR")
	testThumbDir = filepath.Join("images", "thumbnails")
)

func testResolverConfig() ImageResolverConfig {
	return ImageResolverConfig{
		Root:         "images",
		AssetRoot:    "PERFORMANCE GEAR",
		ThumbnailDir: "thumbnails",
		Match:        DefaultImageMatchOptions(),
	}
}

// fakeLoader returns fixed sheet bytes
type fakeLoader struct {
	data []byte
	err  error
}

func (f *fakeLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

// fakeWriter records every catalog it is asked to write
type fakeWriter struct {
	written []domain.Catalog
	err     error
}

func (f *fakeWriter) Write(ctx context.Context, catalog domain.Catalog) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, catalog)
	return nil
}
