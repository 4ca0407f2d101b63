// Package sheet reads vendor exports from disk and normalizes them to CSV.
//
// Order forms are usually delivered as CSV, but spreadsheet tools also save
// ".xls" files that are really HTML tables. Those are flattened to CSV here so
// the rest of the pipeline only ever sees one format.
package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/modulargunworks/catalog/internal/domain"
	"github.com/rs/zerolog"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// sniffLen is how much of the file is inspected to detect HTML
const sniffLen = 1024

// maxColspan matches the limit browsers apply to the colspan attribute
const maxColspan = 1000

// Loader implements domain.SheetLoader for local files
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a sheet loader
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads path and returns its contents as CSV bytes
func (l *Loader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReadSheet, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !looksLikeHTML(data) {
		return data, nil
	}

	l.logger.Debug().Str("path", path).Msg("sheet is an HTML table, converting to CSV")
	out, err := HTMLTableToCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrReadSheet, path, err)
	}
	return out, nil
}

func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	head = bytes.ToLower(bytes.TrimSpace(head))
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	return bytes.Contains(head, []byte("<table")) ||
		bytes.Contains(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<!doctype html"))
}

// HTMLTableToCSV writes one CSV record per <tr>. Cell text has its
// whitespace collapsed; a colspan of n contributes n-1 trailing empty cells
// so fixed column positions still line up. colspan is capped at 1000.
func HTMLTableToCSV(r io.Reader) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	var werr error
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if werr != nil {
			return
		}
		var record []string
		tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
			record = append(record, strings.Join(strings.Fields(td.Text()), " "))
			if span, err := strconv.Atoi(strings.TrimSpace(td.AttrOr("colspan", "1"))); err == nil {
				span = min(span, maxColspan)
				for i := 1; i < span; i++ {
					record = append(record, "")
				}
			}
		})
		werr = w.Write(record)
	})
	if werr != nil {
		return nil, werr
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
