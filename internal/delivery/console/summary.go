// Package console renders run reports for terminal users.
package console

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/modulargunworks/catalog/internal/domain"
)

// PrintSummary writes the end-of-run summary: the product total, the
// per-brand counts and every SKU that got no images.
func PrintSummary(w io.Writer, report *domain.RunReport) error {
	if report == nil {
		return nil
	}

	p := &printer{w: w}
	p.printf("Exported %s products to %s\n", humanize.Comma(int64(report.Products)), report.Output)

	brands := make([]string, 0, len(report.Brands))
	for brand := range report.Brands {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	for _, brand := range brands {
		p.printf("  %s: %s\n", brand, humanize.Comma(int64(report.Brands[brand])))
	}

	skipped := report.Skipped
	if total := skipped.ShortRows + skipped.SectionMarkers + skipped.MissingSKUOrName + skipped.MalformedRows; total > 0 {
		p.printf("Skipped %s rows (%d short, %d section markers, %d without SKU or name, %d malformed)\n",
			humanize.Comma(int64(total)), skipped.ShortRows, skipped.SectionMarkers, skipped.MissingSKUOrName, skipped.MalformedRows)
	}

	p.printf("\nSKUs with no matching images (%s):\n", humanize.Comma(int64(len(report.MissingImages))))
	for _, sku := range report.MissingImages {
		p.printf("  %s\n", sku)
	}

	if !report.FinishedAt.IsZero() {
		p.printf("\nFinished in %s\n", report.Duration().Round(time.Millisecond))
	}
	return p.err
}

// printer keeps the first write error
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
