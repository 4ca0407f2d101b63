package domain

import "time"

// Catalog maps a brand name to its products in input order
type Catalog map[string][]Product

// Count returns the total number of products across all brands
func (c Catalog) Count() int {
	total := 0
	for _, products := range c {
		total += len(products)
	}
	return total
}

// SkipCounts tallies rows that did not become products
type SkipCounts struct {
	ShortRows        int `json:"short_rows"`
	SectionMarkers   int `json:"section_markers"`
	MissingSKUOrName int `json:"missing_sku_or_name"`
	MalformedRows    int `json:"malformed_rows"`
}

// RunReport summarizes a single ingestion run
type RunReport struct {
	RunID         string         `json:"run_id"`
	Input         string         `json:"input"`
	Output        string         `json:"output"`
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    time.Time      `json:"finished_at"`
	Products      int            `json:"products"`
	Brands        map[string]int `json:"brands"`
	MissingImages []string       `json:"missing_images"`
	Skipped       SkipCounts     `json:"skipped"`
}

// Duration returns how long the run took
func (r RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
